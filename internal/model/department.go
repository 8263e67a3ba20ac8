package model

// Department is an organizational group. Accounts and files reference it by
// id; the reference is weak (no cascade) and deletion is blocked while any
// account still belongs to it.
type Department struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
