package config

import "testing"

func TestParseDefaults(t *testing.T) {
	cfg := Parse(nil)

	if cfg.ListenPort != defaultListenPort {
		t.Errorf("ListenPort = %d, want %d", cfg.ListenPort, defaultListenPort)
	}
	if cfg.ListenAddr != defaultListenAddr {
		t.Errorf("ListenAddr = %q, want %q", cfg.ListenAddr, defaultListenAddr)
	}
	if cfg.OriginHost != defaultOriginHost {
		t.Errorf("OriginHost = %q, want %q", cfg.OriginHost, defaultOriginHost)
	}
	if cfg.OriginRealm != defaultOriginRealm {
		t.Errorf("OriginRealm = %q, want %q", cfg.OriginRealm, defaultOriginRealm)
	}
	if cfg.ProductName != defaultProductName {
		t.Errorf("ProductName = %q, want %q", cfg.ProductName, defaultProductName)
	}
	if cfg.FirmwareRevision != defaultFirmwareRevision {
		t.Errorf("FirmwareRevision = %d, want %d", cfg.FirmwareRevision, defaultFirmwareRevision)
	}
	if cfg.HostIPAddress.String() != defaultHostIPAddress {
		t.Errorf("HostIPAddress = %v, want %q", cfg.HostIPAddress, defaultHostIPAddress)
	}
	if cfg.VendorID != defaultVendorID {
		t.Errorf("VendorID = %d, want %d", cfg.VendorID, defaultVendorID)
	}
	if cfg.ValidityTime != defaultValidityTime {
		t.Errorf("ValidityTime = %d, want %d", cfg.ValidityTime, defaultValidityTime)
	}
	if cfg.TotalOctets != defaultTotalOctets {
		t.Errorf("TotalOctets = %d, want %d", cfg.TotalOctets, defaultTotalOctets)
	}
}

func TestParseOverrides(t *testing.T) {
	cfg := Parse([]string{
		"--listen-port=3869",
		"--origin-host=other_host",
		"--vendor-id=123",
		"--total-octets=2048",
	})

	if cfg.ListenPort != 3869 {
		t.Errorf("ListenPort = %d, want 3869", cfg.ListenPort)
	}
	if cfg.OriginHost != "other_host" {
		t.Errorf("OriginHost = %q, want %q", cfg.OriginHost, "other_host")
	}
	if cfg.VendorID != 123 {
		t.Errorf("VendorID = %d, want 123", cfg.VendorID)
	}
	if cfg.TotalOctets != 2048 {
		t.Errorf("TotalOctets = %d, want 2048", cfg.TotalOctets)
	}
}
