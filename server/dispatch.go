// Dispatch and answer builders (spec.md §4.7): one function per command,
// each composing its answer into the connection's reusable output buffer
// via message.Builder, in the fixed AVP order the spec requires.
package server

import (
	"github.com/dummyocs/diameter-gy/config"
	"github.com/dummyocs/diameter-gy/gy"
	"github.com/dummyocs/diameter-gy/message"
)

var avpResultCode = message.AvpId{Code: message.AVP_CODE_RESULT_CODE}
var avpOriginHost = message.AvpId{Code: message.AVP_CODE_ORIGIN_HOST}
var avpOriginRealm = message.AvpId{Code: message.AVP_CODE_ORIGIN_REALM}
var avpVendorID = message.AvpId{Code: message.AVP_CODE_VENDOR_ID}
var avpProductName = message.AvpId{Code: message.AVP_CODE_PRODUCT_NAME}
var avpFirmwareRevision = message.AvpId{Code: message.AVP_CODE_FIRMWARE_REVISION}
var avpHostIPAddress = message.AvpId{Code: message.AVP_CODE_HOST_IP_ADDRESS}
var avpSupportedVendorID = message.AvpId{Code: message.AVP_CODE_SUPPORTED_VENDOR_ID}
var avpAuthApplicationID = message.AvpId{Code: message.AVP_CODE_AUTH_APPLICATION_ID}

var avpSessionID = message.AvpId{Code: gy.AvpSessionId}
var avpCCRequestType = message.AvpId{Code: gy.AvpCCRequestType}
var avpCCRequestNumber = message.AvpId{Code: gy.AvpCCRequestNumber}
var avpCCSessionFailover = message.AvpId{Code: gy.AvpCCSessionFailover}
var avpMultipleServicesIndicator = message.AvpId{Code: gy.AvpMultipleServicesIndicator}
var avpMultipleServicesCreditControl = message.AvpId{Code: gy.AvpMultipleServicesCreditControl}
var avpServiceIdentifier = message.AvpId{Code: gy.AvpServiceIdentifier}
var avpRatingGroup = message.AvpId{Code: gy.AvpRatingGroup}
var avpGrantedServiceUnit = message.AvpId{Code: gy.AvpGrantedServiceUnit}
var avpValidityTime = message.AvpId{Code: gy.AvpValidityTime}
var avpTimeQuotaThreshold = message.AvpId{Code: gy.AvpTimeQuotaThreshold}
var avpVolumeQuotaThreshold = message.AvpId{Code: gy.AvpVolumeQuotaThreshold}
var avpCCTime = message.AvpId{Code: gy.AvpCCTime}
var avpCCInputOctets = message.AvpId{Code: gy.AvpCCInputOctets}
var avpCCOutputOctets = message.AvpId{Code: gy.AvpCCOutputOctets}
var avpCCTotalOctets = message.AvpId{Code: gy.AvpCCTotalOctets}

// buildCEA composes a Capabilities-Exchange-Answer.
func buildCEA(cfg *config.Config, header message.MessageHeader, out *[]byte) {
	b := message.NewMessageBuilder(out, 0, header.Command, header.HopByHop, header.EndToEnd)
	b.PutUint32(avpResultCode, 0, uint32(message.DIAMETER_SUCCESS)).
		PutBytes(avpOriginHost, 0, []byte(cfg.OriginHost)).
		PutBytes(avpOriginRealm, 0, []byte(cfg.OriginRealm)).
		PutUint32(avpVendorID, 0, cfg.VendorID).
		PutBytes(avpProductName, 0, []byte(cfg.ProductName)).
		PutUint32(avpFirmwareRevision, 0, cfg.FirmwareRevision).
		PutAddress(avpHostIPAddress, 0, cfg.HostIPAddress).
		PutUint32(avpSupportedVendorID, 0, message.VENDOR_3GPP).
		PutUint32(avpAuthApplicationID, 0, gy.ApplicationID)
	b.End()
}

// buildDWA composes a Device-Watchdog-Answer.
func buildDWA(cfg *config.Config, header message.MessageHeader, out *[]byte) {
	b := message.NewMessageBuilder(out, 0, header.Command, header.HopByHop, header.EndToEnd)
	b.PutUint32(avpResultCode, 0, uint32(message.DIAMETER_SUCCESS)).
		PutBytes(avpOriginHost, 0, []byte(cfg.OriginHost)).
		PutBytes(avpOriginRealm, 0, []byte(cfg.OriginRealm))
	b.End()
}

// buildDPA composes a Disconnect-Peer-Answer. The caller is responsible
// for closing the connection after writing it (spec.md §4.7).
func buildDPA(cfg *config.Config, header message.MessageHeader, out *[]byte) {
	b := message.NewMessageBuilder(out, 0, header.Command, header.HopByHop, header.EndToEnd)
	b.PutUint32(avpResultCode, 0, uint32(message.DIAMETER_SUCCESS)).
		PutBytes(avpOriginHost, 0, []byte(cfg.OriginHost)).
		PutBytes(avpOriginRealm, 0, []byte(cfg.OriginRealm))
	b.End()
}

// buildUnknown composes the error answer for an unrecognized command.
func buildUnknown(cfg *config.Config, header message.MessageHeader, out *[]byte) {
	resultCode := message.DIAMETER_APPLICATION_UNSUPPORTED
	if header.Command.ApplicationID == message.BaseApplicationID || header.Command.ApplicationID == gy.ApplicationID {
		resultCode = message.DIAMETER_COMMAND_UNSUPPORTED
	}
	b := message.NewMessageBuilder(out, message.FlagError, header.Command, header.HopByHop, header.EndToEnd)
	b.PutUint32(avpResultCode, 0, uint32(resultCode)).
		PutBytes(avpOriginHost, 0, []byte(cfg.OriginHost)).
		PutBytes(avpOriginRealm, 0, []byte(cfg.OriginRealm))
	b.End()
}

// buildCCA composes a Credit-Control-Answer by parsing payload into ccr
// (clearing it first), then reflecting either a synthetic success or the
// mapped ParseError result code. ccr is owned by the caller's connection
// and reused across requests.
func buildCCA(cfg *config.Config, header message.MessageHeader, payload []byte, out *[]byte, ccr *gy.CcRequest) {
	resultCode := uint32(message.DIAMETER_SUCCESS)
	if err := gy.Parse(payload, ccr); err != nil {
		if pe, ok := err.(message.ParseError); ok {
			resultCode = pe.ResultCode()
		} else {
			resultCode = uint32(message.DIAMETER_UNABLE_TO_COMPLY)
		}
	}

	flags := header.Flags & message.FlagProxiable
	b := message.NewMessageBuilder(out, flags, header.Command, header.HopByHop, header.EndToEnd)
	b.PutBytesNonempty(avpSessionID, 0, ccr.SessionId)
	b.PutUint32(avpResultCode, 0, resultCode)
	b.PutBytes(avpOriginHost, 0, []byte(cfg.OriginHost))
	b.PutBytes(avpOriginRealm, 0, []byte(cfg.OriginRealm))
	b.PutUint32(avpAuthApplicationID, 0, gy.ApplicationID)
	b.PutUint32Option(avpCCRequestType, 0, ccr.RequestType)
	b.PutUint32Option(avpCCRequestNumber, 0, ccr.RequestNumber)

	if resultCode == uint32(message.DIAMETER_SUCCESS) {
		b.PutUint32(avpCCSessionFailover, 0, 1)
		b.PutEmpty(avpMultipleServicesIndicator, 0)
		for i := range ccr.Services {
			putService(cfg, &ccr.Services[i], b)
		}
	}
	b.End()
}

// putService appends one Multiple-Services-Credit-Control group for svc.
// Quota AVPs are synthesized from static config, per spec.md §9(d): no
// session state is retained across CCRs.
func putService(cfg *config.Config, svc *gy.CcService, b *message.Builder) {
	sb := b.BeginAVP(avpMultipleServicesCreditControl, 0)
	sb.PutUint32(avpResultCode, 0, uint32(message.DIAMETER_SUCCESS))
	sb.PutUint32Option(avpServiceIdentifier, 0, svc.ServiceId)
	sb.PutUint32Option(avpRatingGroup, 0, svc.RatingGroup)
	if svc.UnitsRequested {
		sb.PutUint32Nonzero(avpValidityTime, 0, cfg.ValidityTime)
		sb.PutUint32Nonzero(avpTimeQuotaThreshold, 0, cfg.TimeThreshold)
		sb.PutUint32Nonzero(avpVolumeQuotaThreshold, 0, cfg.VolumeThreshold)

		gb := sb.BeginAVP(avpGrantedServiceUnit, 0)
		gb.PutUint32Nonzero(avpCCTime, 0, cfg.Time)
		gb.PutUint64Nonzero(avpCCInputOctets, 0, cfg.InputOctets)
		gb.PutUint64Nonzero(avpCCOutputOctets, 0, cfg.OutputOctets)
		gb.PutUint64Nonzero(avpCCTotalOctets, 0, cfg.TotalOctets)
		gb.End()
	}
	sb.End()
}
