package app

import (
	"time"
)

// localTimeString formats wall time with the configured offset
// applied. DST shifts one more hour. An unset clock falls back to a
// deterministic "00:00:00".
func (self *Logic) localTimeString() string {
	if self.utcSeconds == 0 {
		return "00:00:00"
	}
	local := int64(self.utcSeconds) + int64(self.offsetHours)*3600
	if self.dstActive {
		local += 3600
	}
	if local < 0 {
		return "00:00:00"
	}
	return time.Unix(local, 0).UTC().Format("15:04:05")
}
