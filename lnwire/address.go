package lnwire

import (
	"fmt"
	"net"
)

// addressType is the one-byte discriminant prefixing each entry in a
// node_announcement's address list.
type addressType uint8

const (
	addrPadding addressType = 0
	addrTCP4    addressType = 1
	addrTCP6    addressType = 2
	addrOnionV2 addressType = 3
)

// ParseAddressList decodes a node_announcement address payload:
// padding-type entries are skipped, parsing stops cleanly
// at the first address type this node doesn't recognize (addresses past
// that point are simply not kept), and a malformed entry of a *known*
// type invalidates the entire message.
func ParseAddressList(payload []byte) ([]net.Addr, error) {
	var addrs []net.Addr

	for len(payload) > 0 {
		t := addressType(payload[0])
		payload = payload[1:]

		switch t {
		case addrPadding:
			continue

		case addrTCP4:
			if len(payload) < 6 {
				return nil, fmt.Errorf("lnwire: truncated " +
					"IPv4 address entry")
			}
			ip := net.IP(payload[:4])
			port := int(payload[4])<<8 | int(payload[5])
			payload = payload[6:]
			addrs = append(addrs, &net.TCPAddr{IP: ip, Port: port})

		case addrTCP6:
			if len(payload) < 18 {
				return nil, fmt.Errorf("lnwire: truncated " +
					"IPv6 address entry")
			}
			ip := net.IP(payload[:16])
			port := int(payload[16])<<8 | int(payload[17])
			payload = payload[18:]
			addrs = append(addrs, &net.TCPAddr{IP: ip, Port: port})

		default:
			// Unknown address type: stop cleanly, keeping
			// whatever was parsed so far.
			return addrs, nil
		}
	}

	return addrs, nil
}
