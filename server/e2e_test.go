package server

import (
	"io"
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dummyocs/diameter-gy/config"
	"github.com/dummyocs/diameter-gy/gy"
	"github.com/dummyocs/diameter-gy/message"
	"github.com/dummyocs/diameter-gy/transport"
)

// startTestServer binds a real TCP listener on an ephemeral port and
// accepts connections with the same per-connection state machine the
// production server runs, without going through Server's accept loop —
// this suite drives the wire round trip, not the listener/shutdown
// plumbing.
func startTestServer(cfg *config.Config) (addr string, stop func()) {
	listener, err := transport.NewDiameterListener("127.0.0.1:0", 0)
	Expect(err).NotTo(HaveOccurred())

	done := make(chan struct{})
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				close(done)
				return
			}
			go func() {
				defer conn.Close()
				c := &connection{conn: conn, cfg: cfg}
				c.serve()
			}()
		}
	}()

	return listener.Addr().String(), func() {
		listener.Close()
		<-done
	}
}

func readAnswer(conn net.Conn) message.MessageHeader {
	var headerBuf [message.HeaderLength]byte
	_, err := io.ReadFull(conn, headerBuf[:])
	Expect(err).NotTo(HaveOccurred())

	header, err := message.ParseMessageHeader(headerBuf[:])
	Expect(err).NotTo(HaveOccurred())

	payload := make([]byte, header.PayloadLength())
	_, err = io.ReadFull(conn, payload)
	Expect(err).NotTo(HaveOccurred())

	return header
}

var _ = Describe("connection state machine", func() {
	var (
		addr string
		stop func()
		conn net.Conn
	)

	BeforeEach(func() {
		addr, stop = startTestServer(&config.Config{
			OriginHost:    "dummy_host",
			OriginRealm:   "dummy_realm",
			ProductName:   "Dummy OCS",
			HostIPAddress: net.ParseIP("127.0.0.1"),
			VendorID:      0xFFFFFFFF,
			ValidityTime:  900,
			TotalOctets:   1048576,
		})

		var err error
		conn, err = net.DialTimeout("tcp", addr, time.Second)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		conn.Close()
		stop()
	})

	It("answers Capabilities-Exchange-Request with a CEA", func() {
		var req []byte
		b := message.NewMessageBuilder(&req, message.FlagRequest, message.CapabilitiesExchange, 1, 2)
		b.End()
		_, err := conn.Write(req)
		Expect(err).NotTo(HaveOccurred())

		header := readAnswer(conn)
		Expect(header.Command).To(Equal(message.CapabilitiesExchange))
		Expect(header.IsRequest()).To(BeFalse())
		Expect(header.HopByHop).To(BeEquivalentTo(1))
		Expect(header.EndToEnd).To(BeEquivalentTo(2))
	})

	It("answers Device-Watchdog-Request with a DWA", func() {
		var req []byte
		b := message.NewMessageBuilder(&req, message.FlagRequest, message.DeviceWatchdog, 3, 4)
		b.End()
		_, err := conn.Write(req)
		Expect(err).NotTo(HaveOccurred())

		header := readAnswer(conn)
		Expect(header.Command).To(Equal(message.DeviceWatchdog))
	})

	It("answers a Gy CCR with a successful CCA", func() {
		var req []byte
		b := message.NewMessageBuilder(&req, message.FlagRequest, gy.CreditControl, 5, 6)
		b.PutBytes(message.AvpId{Code: gy.AvpSessionId}, 0, []byte("session-1"))
		b.PutUint32(message.AvpId{Code: gy.AvpCCRequestType}, 0, 1)
		b.PutUint32(message.AvpId{Code: gy.AvpCCRequestNumber}, 0, 0)
		b.End()
		_, err := conn.Write(req)
		Expect(err).NotTo(HaveOccurred())

		header := readAnswer(conn)
		Expect(header.Command).To(Equal(gy.CreditControl))
	})

	It("closes the connection after a Disconnect-Peer-Request", func() {
		var req []byte
		b := message.NewMessageBuilder(&req, message.FlagRequest, message.DisconnectPeer, 7, 8)
		b.End()
		_, err := conn.Write(req)
		Expect(err).NotTo(HaveOccurred())

		readAnswer(conn)

		buf := make([]byte, 1)
		conn.SetReadDeadline(time.Now().Add(time.Second))
		_, err = conn.Read(buf)
		Expect(err).To(Equal(io.EOF))
	})
})
