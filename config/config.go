// Package config parses the CLI surface (spec.md §6) into an immutable
// Config, built once at startup and shared by reference across every
// connection goroutine the server spawns.
package config

import (
	"fmt"
	"net"
	"os"

	"github.com/spf13/pflag"
)

// Config holds the charging parameters and listen address this server was
// started with. It is never mutated after Parse returns.
type Config struct {
	ListenPort  uint16
	ListenAddr  string
	OriginHost  string
	OriginRealm string

	ProductName      string
	FirmwareRevision uint32
	HostIPAddress    net.IP
	VendorID         uint32

	ValidityTime    uint32
	Time            uint32
	TimeThreshold   uint32
	InputOctets     uint64
	OutputOctets    uint64
	TotalOctets     uint64
	VolumeThreshold uint32
}

// Defaults, taken verbatim from the dummy OCS this server impersonates.
const (
	defaultListenPort       = 3868
	defaultListenAddr       = "127.0.0.1"
	defaultOriginHost       = "dummy_host"
	defaultOriginRealm      = "dummy_realm"
	defaultProductName      = "Dummy OCS"
	defaultFirmwareRevision = 1
	defaultHostIPAddress    = "127.0.0.1"
	defaultVendorID         = 0xFFFFFFFF
	defaultValidityTime     = 15 * 60
	defaultTime             = 0
	defaultTimeThreshold    = 0
	defaultInputOctets      = 0
	defaultOutputOctets     = 0
	defaultTotalOctets      = 1024 * 1024
	defaultVolumeThreshold  = 0
)

// Parse parses args (normally os.Args[1:]) into a Config. On -h/--help it
// prints usage and exits 0; on any parse error, or an unparseable
// --host-ip-address, it prints the error and exits 1 — matching the
// getopts-based CLI this flag surface was ported from.
func Parse(args []string) *Config {
	fs := pflag.NewFlagSet("dummyocs", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dummyocs [options]\n\n%s", fs.FlagUsages())
	}

	help := fs.BoolP("help", "h", false, "Show this usage message.")
	port := fs.Uint16P("listen-port", "p", defaultListenPort, "Port to listen on.")
	addr := fs.StringP("listen-address", "l", defaultListenAddr, "Address to listen on.")
	originHost := fs.String("origin-host", defaultOriginHost, "Value for the Origin-Host AVP.")
	originRealm := fs.String("origin-realm", defaultOriginRealm, "Value for the Origin-Realm AVP.")
	productName := fs.String("product-name", defaultProductName, "Value for the Product-Name AVP.")
	firmwareRevision := fs.Uint32("firmware-revision", defaultFirmwareRevision, "Value for the Firmware-Revision AVP.")
	hostIPAddress := fs.String("host-ip-address", defaultHostIPAddress, "Value for the Host-IP-Address AVP.")
	vendorID := fs.Uint32("vendor-id", defaultVendorID, "Value for the Vendor-Id AVP.")
	validityTime := fs.Uint32("validity-time", defaultValidityTime, "Value for the Validity-Time AVP.")
	ccTime := fs.Uint32("time", defaultTime, "Value for the CC-Time AVP.")
	timeThreshold := fs.Uint32("time-threshold", defaultTimeThreshold, "Value for the Time-Quota-Threshold AVP.")
	inputOctets := fs.Uint64("input-octets", defaultInputOctets, "Value for the CC-Input-Octets AVP.")
	outputOctets := fs.Uint64("output-octets", defaultOutputOctets, "Value for the CC-Output-Octets AVP.")
	totalOctets := fs.Uint64("total-octets", defaultTotalOctets, "Value for the CC-Total-Octets AVP.")
	volumeThreshold := fs.Uint32("volume-threshold", defaultVolumeThreshold, "Value for the Volume-Quota-Threshold AVP.")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *help {
		fs.Usage()
		os.Exit(0)
	}

	ip := net.ParseIP(*hostIPAddress)
	if ip == nil {
		fmt.Fprintf(os.Stderr, "Failed to parse host-ip-address: %s\n", *hostIPAddress)
		os.Exit(1)
	}

	return &Config{
		ListenPort:       *port,
		ListenAddr:       *addr,
		OriginHost:       *originHost,
		OriginRealm:      *originRealm,
		ProductName:      *productName,
		FirmwareRevision: *firmwareRevision,
		HostIPAddress:    ip,
		VendorID:         *vendorID,
		ValidityTime:     *validityTime,
		Time:             *ccTime,
		TimeThreshold:    *timeThreshold,
		InputOctets:      *inputOctets,
		OutputOctets:     *outputOctets,
		TotalOctets:      *totalOctets,
		VolumeThreshold:  *volumeThreshold,
	}
}
