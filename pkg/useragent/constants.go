package useragent

// Unknown is used for any component that cannot be determined.
const Unknown = "unknown"

// Device types represent the category of device that made the request.
const (
	// DeviceTypeBot identifies automated crawlers, bots and spiders.
	DeviceTypeBot = "bot"

	// DeviceTypeMobile identifies smartphones and feature phones.
	DeviceTypeMobile = "mobile"

	// DeviceTypeTablet identifies tablet devices.
	DeviceTypeTablet = "tablet"

	// DeviceTypeDesktop identifies desktop computers and laptops.
	DeviceTypeDesktop = "desktop"

	// DeviceTypeUnknown is used when the device type cannot be determined.
	DeviceTypeUnknown = Unknown
)

// Browser name identifiers.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
	BrowserSafari  = "safari"
	BrowserEdge    = "edge"
	BrowserOpera   = "opera"
	BrowserSamsung = "samsung"
	BrowserIE      = "ie"
	BrowserUnknown = Unknown
)

// Operating system identifiers.
const (
	OSWindows  = "windows"
	OSMacOS    = "macos"
	OSiOS      = "ios"
	OSAndroid  = "android"
	OSChromeOS = "chromeos"
	OSLinux    = "linux"
	OSUnknown  = Unknown
)
