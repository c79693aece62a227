package report

// MenuItem is one read-only view offered by the dashboard.
type MenuItem int

const (
	MenuHome MenuItem = iota
	MenuStatus
	MenuProviders
	MenuConfigSchema
	MenuEstopStatus
	MenuChannels
	MenuChannelDoctor
	MenuAuthProfiles
	MenuModelsList
	MenuModelsStatus
	MenuModelsRefresh
	MenuDoctorFull
	MenuDoctorModels
	MenuDoctor
	MenuMemoryList
	MenuMemoryStats
	MenuHardwareDiscover
	MenuPeripheralList

	menuCount
)

var menuTitles = [menuCount]string{
	"Home",
	"Status",
	"Providers",
	"Config Schema",
	"Estop Status",
	"Channels",
	"Channel Doctor (run)",
	"Auth Profiles",
	"Models List",
	"Models Status",
	"Models Refresh (run)",
	"Doctor (run)",
	"Doctor Models (run)",
	"Doctor (readonly)",
	"Memory List (run)",
	"Memory Stats",
	"Hardware Discover (run)",
	"Peripheral List (run)",
}

// Title is the menu label.
func (m MenuItem) Title() string {
	if m < 0 || m >= menuCount {
		return menuTitles[MenuHome]
	}
	return menuTitles[m]
}

// Menu returns every item in display order.
func Menu() []MenuItem {
	out := make([]MenuItem, menuCount)
	for i := range out {
		out[i] = MenuItem(i)
	}
	return out
}
