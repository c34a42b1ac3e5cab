package message

// Diameter Vendor Codes actually exercised by this server: the Gy
// application is 3GPP-defined (TS 32.299), so VENDOR_3GPP is what CEA's
// Supported-Vendor-Id AVP advertises. VENDOR_NONE names the zero sentinel
// an AvpId with no vendor uses.
const (
	VENDOR_NONE = 0
	VENDOR_3GPP = 10415
)
