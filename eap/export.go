package eap

import (
	"encoding/binary"
	"errors"
	"time"

	gssapi "github.com/janetuk/moonshot"
	"github.com/janetuk/moonshot/eap/keys"
	"github.com/janetuk/moonshot/eap/seq"
)

// exportFormatVersion tags the wire layout of an exported context, so a
// future incompatible revision can be rejected cleanly rather than parsed
// as garbage.
const exportFormatVersion uint8 = 1

// exportKind distinguishes a fully-established export from the partial
// acceptor-only form §4.9 allows mid-exchange.
const (
	exportKindFull            byte = 0
	exportKindPartialAcceptor byte = 1
)

var (
	errImportTruncated = errors.New("gss-eap: truncated exported context token")
	errImportVersion   = errors.New("gss-eap: unsupported exported context version")
)

// Export implements gssapi.SecContext.Export (§4.9 "export"). A fully
// established context serializes everything needed to resume per-message
// protection in another process. An unestablished *acceptor* context can
// also be exported mid-exchange: the partial form carries only the
// negotiated state, the session key once derived, the conversation log the
// still-outstanding channel-binding/MIC check is computed over, and the
// RADIUS selector (learned peer identity and cached State attribute)
// needed to keep driving the AAA exchange after import -- the live RADIUS
// connection itself is not transferable and must be reattached by the
// caller.
func (c *Context) Export() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.established {
		return c.exportFull()
	}
	if c.role != roleAcceptor {
		return nil, newErr(gssapi.ErrUnavailable, minorContextEstablished, "context is not fully established")
	}
	return c.exportPartialAcceptor()
}

func (c *Context) exportFull() ([]byte, error) {
	if c.key == nil {
		return nil, newErr(gssapi.ErrUnavailable, minorContextEstablished, "context is not fully established")
	}

	var buf []byte
	buf = append(buf, exportFormatVersion, exportKindFull, byte(c.role))

	buf = appendUint32(buf, uint32(c.gssFlags))
	buf = appendUint32(buf, uint32(c.key.EncType))
	buf = appendUint32(buf, uint32(c.key.ChecksumType))
	buf = appendBytes(buf, c.key.Value)

	buf = appendUint64(buf, c.sendSeq.Current())
	buf = appendUint64(buf, c.recvSeq.Highest())

	initName := ""
	if c.initiatorName != nil {
		initName, _, _ = c.initiatorName.Display()
	}
	acceptName := ""
	if c.acceptorName != nil {
		acceptName, _, _ = c.acceptorName.Display()
	}
	buf = appendBytes(buf, []byte(initName))
	buf = appendBytes(buf, []byte(acceptName))

	var expiryUnix uint64
	if !c.expiry.IsZero() {
		expiryUnix = uint64(c.expiry.Unix())
	}
	buf = appendUint64(buf, expiryUnix)

	c.release()

	return buf, nil
}

func (c *Context) exportPartialAcceptor() ([]byte, error) {
	var buf []byte
	buf = append(buf, exportFormatVersion, exportKindPartialAcceptor, byte(c.role))

	buf = appendUint32(buf, uint32(c.state))
	buf = appendUint32(buf, uint32(c.gssFlags))
	buf = appendBytes(buf, c.conversation.Bytes())

	var cb []byte
	if c.channelBinding != nil {
		cb = c.channelBinding.Data
	}
	buf = appendBytes(buf, cb)

	hasKey := byte(0)
	if c.key != nil {
		hasKey = 1
	}
	buf = append(buf, hasKey)
	if c.key != nil {
		buf = appendUint32(buf, uint32(c.key.EncType))
		buf = appendUint32(buf, uint32(c.key.ChecksumType))
		buf = appendBytes(buf, c.key.Value)
	}

	var learnedName, server string
	var cachedState []byte
	if sub := c.acceptorSub; sub != nil {
		learnedName, cachedState, server = sub.learnedName, sub.cachedState, sub.radiusCfg.Server
	}
	buf = appendBytes(buf, []byte(learnedName))
	buf = appendBytes(buf, cachedState)
	buf = appendBytes(buf, []byte(server))

	return buf, nil
}

func appendUint32(buf []byte, v uint32) []byte {
	var tmp [4]byte
	binary.BigEndian.PutUint32(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.BigEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendBytes(buf []byte, b []byte) []byte {
	buf = appendUint32(buf, uint32(len(b)))
	return append(buf, b...)
}

func readUint32(data []byte) (uint32, []byte, error) {
	if len(data) < 4 {
		return 0, nil, errImportTruncated
	}
	return binary.BigEndian.Uint32(data[:4]), data[4:], nil
}

func readUint64(data []byte) (uint64, []byte, error) {
	if len(data) < 8 {
		return 0, nil, errImportTruncated
	}
	return binary.BigEndian.Uint64(data[:8]), data[8:], nil
}

func readBytes(data []byte) ([]byte, []byte, error) {
	n, rest, err := readUint32(data)
	if err != nil {
		return nil, nil, err
	}
	if uint64(len(rest)) < uint64(n) {
		return nil, nil, errImportTruncated
	}
	return rest[:n], rest[n:], nil
}

func readString(data []byte) (string, []byte, error) {
	b, rest, err := readBytes(data)
	if err != nil {
		return "", nil, err
	}
	return string(b), rest, nil
}

// importContext is Provider.ImportSecContext's counterpart to Export.
func importContext(data []byte) (*Context, error) {
	if len(data) < 3 {
		return nil, errImportTruncated
	}
	version := data[0]
	if version != exportFormatVersion {
		return nil, errImportVersion
	}
	kind := data[1]
	r := role(data[2])
	data = data[3:]

	if kind == exportKindPartialAcceptor {
		return importPartialAcceptor(r, data)
	}

	flags, data, err := readUint32(data)
	if err != nil {
		return nil, err
	}
	encType, data, err := readUint32(data)
	if err != nil {
		return nil, err
	}
	cksumType, data, err := readUint32(data)
	if err != nil {
		return nil, err
	}
	keyVal, data, err := readBytes(data)
	if err != nil {
		return nil, err
	}
	sendNext, data, err := readUint64(data)
	if err != nil {
		return nil, err
	}
	recvNext, data, err := readUint64(data)
	if err != nil {
		return nil, err
	}
	initName, data, err := readString(data)
	if err != nil {
		return nil, err
	}
	acceptName, data, err := readString(data)
	if err != nil {
		return nil, err
	}
	expiryUnix, _, err := readUint64(data)
	if err != nil {
		return nil, err
	}

	c := newContext(r)
	c.gssFlags = gssapi.ContextFlag(flags)
	c.key = &keys.Key{EncType: int32(encType), ChecksumType: int32(cksumType), Value: keyVal}
	c.sendSeq = seq.NewState(sendNext, true, true)
	c.recvSeq = seq.NewState(recvNext, true, true)
	if initName != "" {
		c.initiatorName = newNAIName(initName)
	}
	if acceptName != "" {
		c.acceptorName = newNAIName(acceptName)
	}
	if expiryUnix != 0 {
		c.expiry = time.Unix(int64(expiryUnix), 0)
	}
	c.state = stateEstablished
	c.established = true

	return c, nil
}

// importPartialAcceptor reconstructs an unestablished acceptor context from
// exportPartialAcceptor's layout. The caller must still reattach a live
// RadiusClient (via WithRadiusClient/WithRadiusServer against a credential
// passed to AcceptSecContext, or directly against the returned context's
// acceptorSub) before the RADIUS sub-protocol can continue -- the cached
// learned name and State attribute are restored here so that reattached
// client resumes from the right point, but the connection itself is not
// part of the exported state.
func importPartialAcceptor(r role, data []byte) (*Context, error) {
	st, data, err := readUint32(data)
	if err != nil {
		return nil, err
	}
	flags, data, err := readUint32(data)
	if err != nil {
		return nil, err
	}
	conv, data, err := readBytes(data)
	if err != nil {
		return nil, err
	}
	cb, data, err := readBytes(data)
	if err != nil {
		return nil, err
	}
	if len(data) < 1 {
		return nil, errImportTruncated
	}
	hasKey := data[0]
	data = data[1:]

	c := newContext(r)
	c.state = state(st)
	c.gssFlags = gssapi.ContextFlag(flags)
	if len(conv) > 0 {
		c.conversation.Record(conv)
	}
	if len(cb) > 0 {
		c.channelBinding = &gssapi.ChannelBinding{Data: cb}
	}

	if hasKey == 1 {
		var encType, cksumType uint32
		var keyVal []byte
		encType, data, err = readUint32(data)
		if err != nil {
			return nil, err
		}
		cksumType, data, err = readUint32(data)
		if err != nil {
			return nil, err
		}
		keyVal, data, err = readBytes(data)
		if err != nil {
			return nil, err
		}
		c.key = &keys.Key{EncType: int32(encType), ChecksumType: int32(cksumType), Value: keyVal}
	}

	learnedName, data, err := readString(data)
	if err != nil {
		return nil, err
	}
	cachedState, data, err := readBytes(data)
	if err != nil {
		return nil, err
	}
	server, _, err := readString(data)
	if err != nil {
		return nil, err
	}

	c.acceptorSub = &acceptorSubstate{learnedName: learnedName, cachedState: cachedState}
	c.acceptorSub.radiusCfg.Server = server

	return c, nil
}
