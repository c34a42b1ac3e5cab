// Definitions for common codes (e.g., Result-Code, AVP codes, command codes)
package message

// AVP Codes (RFC 6733 base protocol AVPs used by CER/DWR/DPR/CCA)
const (
	AVP_CODE_SESSION_ID          = uint32(263)
	AVP_CODE_ORIGIN_HOST         = uint32(264)
	AVP_CODE_ORIGIN_REALM        = uint32(296)
	AVP_CODE_HOST_IP_ADDRESS     = uint32(257)
	AVP_CODE_VENDOR_ID           = uint32(266)
	AVP_CODE_FIRMWARE_REVISION   = uint32(267)
	AVP_CODE_PRODUCT_NAME        = uint32(269)
	AVP_CODE_ORIGIN_STATE_ID     = uint32(278)
	AVP_CODE_RESULT_CODE         = uint32(268)
	AVP_CODE_ERROR_MESSAGE       = uint32(281)
	AVP_CODE_EXPERIMENTAL_RESULT = uint32(297)
	AVP_CODE_FAILED_AVP          = uint32(279)
	AVP_CODE_SUPPORTED_VENDOR_ID = uint32(265)
	AVP_CODE_AUTH_APPLICATION_ID = uint32(258)
)

// ResultCode is the Result-Code AVP's value space (RFC 6733 §7.1). The
// thousands digit identifies the error class: 1xxx informational, 2xxx
// success, 3xxx protocol errors, 4xxx transient failures, 5xxx permanent
// failures. Only the values this server actually answers with are named
// here; see message.ParseError for the codes a malformed request maps to
// instead.
type ResultCode uint32

const (
	DIAMETER_SUCCESS                 ResultCode = 2001
	DIAMETER_COMMAND_UNSUPPORTED     ResultCode = 3001
	DIAMETER_APPLICATION_UNSUPPORTED ResultCode = 3007
	DIAMETER_UNABLE_TO_COMPLY        ResultCode = 5012
)

// Base protocol command codes, application id 0.
const (
	CommandCodeCapabilitiesExchange = uint32(257)
	CommandCodeDeviceWatchdog       = uint32(280)
	CommandCodeDisconnectPeer       = uint32(282)
)

// BaseApplicationID is the application id used by all base protocol
// commands (CER/CEA, DWR/DWA, DPR/DPA).
const BaseApplicationID = uint32(0)

var (
	CapabilitiesExchange = CommandId{Code: CommandCodeCapabilitiesExchange, ApplicationID: BaseApplicationID}
	DeviceWatchdog       = CommandId{Code: CommandCodeDeviceWatchdog, ApplicationID: BaseApplicationID}
	DisconnectPeer       = CommandId{Code: CommandCodeDisconnectPeer, ApplicationID: BaseApplicationID}
)
