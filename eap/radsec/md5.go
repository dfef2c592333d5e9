package radsec

import "crypto/md5"

// md5sum implements the b(1) = MD5(secret + prev) step from RFC 2548 § 2.4.2
// and RFC 2865 § 5.2.
func md5sum(secret, prev []byte) []byte {
	h := md5.New()
	h.Write(secret)
	h.Write(prev)
	return h.Sum(nil)
}
