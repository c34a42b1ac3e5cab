package message

import "testing"

func TestParseErrorResultCodes(t *testing.T) {
	tests := []struct {
		name string
		err  ParseError
		want uint32
	}{
		{"InvalidMessageLength", InvalidMessageLength, 5015},
		{"InvalidBitInHeader", InvalidBitInHeader, 5013},
		{"InvalidAvpLength", InvalidAvpLength, 5014},
		{"InvalidAvpValue", InvalidAvpValue, 5004},
		{"InvalidAvpBits", InvalidAvpBits, 3009},
		{"AvpOccursTooManyTimes", AvpOccursTooManyTimes, 5009},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.ResultCode(); got != tt.want {
				t.Errorf("ResultCode() = %d, want %d", got, tt.want)
			}
			if tt.err.Description() == "" {
				t.Errorf("Description() is empty for %s", tt.name)
			}
			if tt.err.Error() != tt.err.Description() {
				t.Errorf("Error() = %q, want %q", tt.err.Error(), tt.err.Description())
			}
		})
	}
}
