package layout

// Destination is a fixed navigation target of the admin sidebar.
type Destination struct {
	Label string
	Path  string
	Icon  string
}

// Destination paths.
const (
	OverviewPath     = "/admin"
	UsersPath        = "/admin/users"
	TransactionsPath = "/admin/withdrawals"
)

var destinations = [...]Destination{
	{Label: "Overview", Path: OverviewPath, Icon: "📊"},
	{Label: "Users", Path: UsersPath, Icon: "👤"},
	{Label: "Transactions", Path: TransactionsPath, Icon: "💸"},
}

// Destinations returns the sidebar destinations in display order.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations[:])
	return out
}

// Lookup returns the destination registered for path.
func Lookup(path string) (Destination, bool) {
	for _, d := range destinations {
		if d.Path == path {
			return d, true
		}
	}
	return Destination{}, false
}
