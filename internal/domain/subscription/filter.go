package subscription

// FilterKind selects which articles count as important.
type FilterKind int

const (
	All FilterKind = iota
	Unread
	Starred
)

// String returns the display name of the filter kind.
func (k FilterKind) String() string {
	switch k {
	case Unread:
		return "Unread"
	case Starred:
		return "Starred"
	default:
		return "All"
	}
}

// Filter is the active filter with the important total of the current view.
type Filter struct {
	Kind      FilterKind
	Important int
}

// FilterFor picks the filter kind from the starred/unread flags.
// Starred is checked before Unread.
func FilterFor(isStarred, isUnread bool) FilterKind {
	switch {
	case isStarred:
		return Starred
	case isUnread:
		return Unread
	default:
		return All
	}
}

// IsStarred reports whether only starred articles count.
func (f Filter) IsStarred() bool { return f.Kind == Starred }

// IsUnread reports whether only unread articles count.
func (f Filter) IsUnread() bool { return f.Kind == Unread }

// Next returns the filter kind that follows k in All, Unread, Starred order.
func (k FilterKind) Next() FilterKind {
	switch k {
	case All:
		return Unread
	case Unread:
		return Starred
	default:
		return All
	}
}
