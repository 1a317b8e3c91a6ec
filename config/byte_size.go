package config

import (
	"encoding/json"
	"fmt"

	"github.com/dustin/go-humanize"
)

// ByteSize accepts either a plain number of bytes or a human string such as "200MiB".
type ByteSize uint64

func (b ByteSize) String() string {
	return humanize.IBytes(uint64(b))
}

func ParseByteSize(sizeStr string) (ByteSize, error) {
	n, err := humanize.ParseBytes(sizeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", sizeStr, err)
	}
	return ByteSize(n), nil
}

func (b ByteSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.String())
}

func (b *ByteSize) UnmarshalJSON(data []byte) error {
	var n uint64
	if err := json.Unmarshal(data, &n); err == nil {
		*b = ByteSize(n)
		return nil
	}
	var sizeStr string
	err := json.Unmarshal(data, &sizeStr)
	if err != nil {
		return fmt.Errorf("size must be a number or a string like \"200MiB\": %w", err)
	}
	parsed, err := ParseByteSize(sizeStr)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
