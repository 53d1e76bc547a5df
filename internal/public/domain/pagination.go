package domain

// MoodsPerPage は気分一覧の1ページあたりの固定件数。
const MoodsPerPage = 30

// Paging は1始まりのページ指定。
type Paging struct {
	Page int
}

// NewPaging は1未満や未指定のページ番号を1へ切り上げる。
func NewPaging(page int) Paging {
	if page < 1 {
		page = 1
	}
	return Paging{Page: page}
}

// Offset returns the number of items to skip for this page.
func (p Paging) Offset() int {
	return MoodsPerPage * (p.Page - 1)
}

// PageCount は総件数から総ページ数を求める。0件のときは0ページ。
func PageCount(total int64) int {
	if total <= 0 {
		return 0
	}
	pages := total / MoodsPerPage
	if total%MoodsPerPage != 0 {
		pages++
	}
	return int(pages)
}
