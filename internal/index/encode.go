package index

import (
	"bytes"
	"encoding/binary"
)

// key = invTime(8) + 0x00 + slug，游标正序遍历即按时间倒序。
func makeTimeSlugKey(unixNano int64, slug string) []byte {
	invTime := ^uint64(unixNano)

	buf := make([]byte, 0, 8+1+len(slug))

	tmp8 := make([]byte, 8)
	binary.BigEndian.PutUint64(tmp8, invTime)
	buf = append(buf, tmp8...)

	buf = append(buf, 0x00)
	buf = append(buf, []byte(slug)...)
	return buf
}

func slugFromTimeSlugKey(k []byte) string {
	// invTime(8) + 0x00 + slug
	if len(k) < 8+2 {
		return ""
	}
	i := bytes.IndexByte(k[8:], 0x00)
	if i < 0 {
		return ""
	}
	pos := 8 + i
	if pos+1 >= len(k) {
		return ""
	}
	return string(k[pos+1:])
}
