// Package pagination 将按发布时间排序的帖子列表切分为固定大小的页面。
package pagination

// PerPage 每页固定展示的帖子数
const PerPage = 10

// Page 描述一页的位置信息，供查询层计算 LIMIT/OFFSET、模板层渲染页码
type Page struct {
	Number  int // 1 起始，越界请求会被收拢到有效范围内
	PerPage int
	Total   int // 条目总数
	Pages   int // 总页数，空列表也有一页
}

// Paginate 根据条目总数和请求的页码计算出一个有效页。
// 页码小于 1 收拢到第一页，超过末页收拢到末页。
func Paginate(total, requested int) Page {
	pages := (total + PerPage - 1) / PerPage
	if pages < 1 {
		pages = 1
	}
	number := requested
	if number < 1 {
		number = 1
	}
	if number > pages {
		number = pages
	}
	return Page{
		Number:  number,
		PerPage: PerPage,
		Total:   total,
		Pages:   pages,
	}
}

// Offset 返回该页在整个列表中的偏移量
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}

// Limit 返回查询时应使用的条数上限
func (p Page) Limit() int {
	return p.PerPage
}

// Count 返回该页实际包含的条目数
func (p Page) Count() int {
	remaining := p.Total - p.Offset()
	if remaining < 0 {
		return 0
	}
	if remaining > p.PerPage {
		return p.PerPage
	}
	return remaining
}

func (p Page) HasPrev() bool {
	return p.Number > 1
}

func (p Page) HasNext() bool {
	return p.Number < p.Pages
}

func (p Page) Prev() int {
	return p.Number - 1
}

func (p Page) Next() int {
	return p.Number + 1
}
