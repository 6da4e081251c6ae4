// Package server implements the daemon's UDP endpoint.
package server

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"net"

	"github.com/openudpt/udptd/logging"
)

// BitTorrent UDP tracker protocol constants (BEP 15).
const (
	protocolMagic = 0x41727101980
	actionConnect = 0
	connectReqLen = 16
)

// UDP owns the tracker's datagram socket and answers connect requests.
//
// TODO: announce and scrape handling. Only the connect handshake is
// implemented, so clients can reach the endpoint but not yet join a swarm.
type UDP struct {
	log  *logging.Logger
	conn *net.UDPConn
}

// NewUDP binds the UDP socket on bindAddr.
func NewUDP(bindAddr string, log *logging.Logger) (*UDP, error) {
	addr, err := net.ResolveUDPAddr("udp", bindAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", bindAddr, err)
	}

	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to bind %s: %w", bindAddr, err)
	}

	return &UDP{log: log, conn: conn}, nil
}

// Addr returns the bound socket address. Useful when binding to port 0.
func (u *UDP) Addr() net.Addr {
	return u.conn.LocalAddr()
}

// Serve reads datagrams until Close. Valid connect requests are answered;
// everything else is logged at warning level and dropped. Serve returns nil
// after Close.
func (u *UDP) Serve() error {
	u.log.Infof("listening on udp://%s", u.conn.LocalAddr())

	buf := make([]byte, 2048)
	for {
		n, peer, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				u.log.Infof("udp endpoint shut down")
				return nil
			}
			u.log.Errorf("read failed: %v", err)
			return fmt.Errorf("failed to read datagram: %w", err)
		}

		u.log.Debugf("%d bytes from %s", n, peer)
		u.handle(buf[:n], peer)
	}
}

// handle answers a single datagram.
func (u *UDP) handle(pkt []byte, peer *net.UDPAddr) {
	if len(pkt) < connectReqLen ||
		binary.BigEndian.Uint64(pkt[0:8]) != protocolMagic ||
		binary.BigEndian.Uint32(pkt[8:12]) != actionConnect {
		u.log.Warningf("malformed datagram from %s", peer)
		return
	}

	txID := binary.BigEndian.Uint32(pkt[12:16])

	var resp [16]byte
	binary.BigEndian.PutUint32(resp[0:4], actionConnect)
	binary.BigEndian.PutUint32(resp[4:8], txID)
	if _, err := rand.Read(resp[8:16]); err != nil {
		u.log.Errorf("failed to generate connection id: %v", err)
		return
	}

	if _, err := u.conn.WriteToUDP(resp[:], peer); err != nil {
		u.log.Warningf("connect response to %s failed: %v", peer, err)
	}
}

// Close shuts the socket down, unblocking Serve.
func (u *UDP) Close() error {
	return u.conn.Close()
}
