package domain

// Panels は検索ヘルパーを束ねるためのスライス別名です。
type Panels []Panel

// IndexByID は識別子からパネルの現在位置を逆引きします。
// 永続化は位置アドレスで行われるため、編集の直前に必ずこの逆引きで
// 最新の位置を解決してから書き込みます。見つからなければ -1 を返します。
func (ps Panels) IndexByID(id string) int {
	if id == "" {
		return -1
	}
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// PanelByID は識別子からパネルを特定します。返り値はコピーです。
func (s Story) PanelByID(id string) (Panel, bool) {
	idx := Panels(s.Panels).IndexByID(id)
	if idx < 0 {
		return Panel{}, false
	}
	return s.Panels[idx], true
}

// PanelIndexByID は Story 配下のパネル位置を返します。
func (s Story) PanelIndexByID(id string) int {
	return Panels(s.Panels).IndexByID(id)
}
