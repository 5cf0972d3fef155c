package models

// ProductKind tags a cart line as a single card or a sealed pack. Consumers
// switch on it exhaustively; an unknown kind is a data error, not a fallthrough.
type ProductKind string

const (
	KindCard ProductKind = "card"
	KindPack ProductKind = "pack"
)

func (k ProductKind) Valid() bool {
	switch k {
	case KindCard, KindPack:
		return true
	}
	return false
}
