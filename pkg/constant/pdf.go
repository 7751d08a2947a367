package constant

import "time"

// PDF Generation Constants
const (
	PDFMinValidSizeBytes     = 1000
	PDFLargeHTMLThreshold    = 500 * 1024 // 500 KB
	PDFBytesPerKB            = 1024
	PDFRenderSettleDelay     = 500 * time.Millisecond
	PDFPaperWidthInches      = 8.5
	PDFPaperHeightInches     = 11.0
	PDFMarginInches          = 0.5
	PDFFilePermissions       = 0o600
	PDFChromeMaxOldSpaceSize = "512"
)
