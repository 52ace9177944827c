package repository

// ProductListFilter 查询菜品列表的过滤条件
type ProductListFilter struct {
	CategoryID    uint
	OnlyAvailable bool
	WithRelations bool
	Search        string
}

// OrderListFilter 查询订单列表的过滤条件
type OrderListFilter struct {
	Page      int
	PageSize  int
	SessionID string
	Phone     string
	Status    string
}
