package models

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type EditorIn struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type EditorOut struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Editor struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	PassHash []byte `json:"-"`
}

const (
	ErrEditorID int64 = 0

	RootID    int64 = -1
	RootLogin       = "root"

	RoleReader = "reader"
	RoleEditor = "editor"
)
