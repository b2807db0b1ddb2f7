// Package book は、可変長のパネル列を「表紙・見開き・裏表紙」からなる
// 固定的な読書状態列へ写像する純粋なページネーション計算を提供します。
// 状態を持たず、すべての関数はパネル数と現在位置だけから決定的に導出されます。
package book

// Role はページ状態の大分類です。
type Role int

const (
	// RoleFrontCover は先頭の表紙状態です。
	RoleFrontCover Role = iota
	// RoleSpread は左右2スロットの見開き状態です。
	RoleSpread
	// RoleBackCover は末尾の裏表紙状態です。
	RoleBackCover
)

// SlotKind は見開きの片側スロットに載る内容の種別です。
type SlotKind int

const (
	// SlotEmpty は載せる内容がない空きスロットです。
	SlotEmpty SlotKind = iota
	// SlotForeword は前書きスロットです。最初の見開きの左側にのみ現れます。
	SlotForeword
	// SlotPanel は物語パネルのスロットです。PanelIndex が有効になります。
	SlotPanel
	// SlotClosing は巻末ページのスロットです。最後の見開きの右側にのみ現れます。
	SlotClosing
)

// Slot は見開きの片側1スロットです。
type Slot struct {
	Kind       SlotKind
	PanelIndex int // Kind が SlotPanel のときのみ有効
}

// PageView は読書状態1つ分の分類結果です。
type PageView struct {
	Index int
	Role  Role
	// Left / Right は Role が RoleSpread のときのみ有効です。
	Left  Slot
	Right Slot
}

// SpreadCount はパネル数 n に必要な見開き数を返します。
// 前書きと巻末ページがそれぞれパネル1枚分のスロットを占めるため、
// ceil((n + 2) / 2) になります。
func SpreadCount(panelCount int) int {
	if panelCount < 0 {
		panelCount = 0
	}
	return (panelCount + 2 + 1) / 2
}

// TotalStates はパネル数 n から遷移可能な状態の総数を返します。
// 表紙 + 見開き群 + 裏表紙で 2 + SpreadCount(n) です。
func TotalStates(panelCount int) int {
	return 2 + SpreadCount(panelCount)
}

// Clamp は遷移要求を有効範囲 [0, total-1] に黙って丸めます。
// 範囲外の遷移はエラーではなく端への吸着として扱います。
func Clamp(index, total int) int {
	if total < 1 {
		return 0
	}
	if index < 0 {
		return 0
	}
	if index >= total {
		return total - 1
	}
	return index
}

// StateAt はパネル数 n と現在位置 i からページ状態を導出します。
// i は事前に Clamp されます。見開き i の左スロットは i == 1 のとき前書き、
// それ以外は panel[(i-1)*2 - 1]。右スロットは最後の見開きのとき巻末、
// それ以外は panel[(i-1)*2]。パネル添字が範囲外なら空きスロットになります。
func StateAt(panelCount, index int) PageView {
	total := TotalStates(panelCount)
	index = Clamp(index, total)

	switch index {
	case 0:
		return PageView{Index: index, Role: RoleFrontCover}
	case total - 1:
		return PageView{Index: index, Role: RoleBackCover}
	}

	view := PageView{Index: index, Role: RoleSpread}

	if index == 1 {
		view.Left = Slot{Kind: SlotForeword}
	} else {
		view.Left = panelSlot(panelCount, (index-1)*2-1)
	}

	if index == total-2 {
		view.Right = Slot{Kind: SlotClosing}
	} else {
		view.Right = panelSlot(panelCount, (index-1)*2)
	}

	return view
}

// Walk は 0 から T-1 までの全状態を読書順で導出して返します。
func Walk(panelCount int) []PageView {
	total := TotalStates(panelCount)
	views := make([]PageView, 0, total)
	for i := 0; i < total; i++ {
		views = append(views, StateAt(panelCount, i))
	}
	return views
}

func panelSlot(panelCount, panelIndex int) Slot {
	if panelIndex < 0 || panelIndex >= panelCount {
		return Slot{Kind: SlotEmpty}
	}
	return Slot{Kind: SlotPanel, PanelIndex: panelIndex}
}
