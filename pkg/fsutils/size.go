package fsutils

import "strconv"

var sizeUnits = [...]string{"KB", "MB", "GB", "TB"}

// GetSizeShortText formats size in binary units rounded to the nearest whole unit,
// e.g. 1536 -> "2KB". Sizes below 1KB are shown in bytes and TB is the largest unit.
func GetSizeShortText(size int64) string {
	const unit = 1024
	if size < unit {
		return strconv.FormatInt(size, 10) + "B"
	}
	exp := 0
	div := int64(unit)
	for size/div >= unit && exp < len(sizeUnits)-1 {
		div *= unit
		exp++
	}
	val := (size + div/2) / div
	if val >= unit && exp < len(sizeUnits)-1 {
		val /= unit
		exp++
	}
	return strconv.FormatInt(val, 10) + sizeUnits[exp]
}
