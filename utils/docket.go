package utils

import (
	"fmt"
	"time"
)

// DocketPrefix normalizes a company or branch name into the short code used
// inside a docket number: uppercased, everything outside A-Z0-9 stripped,
// truncated to max characters.
func DocketPrefix(name string, max int) string {
	out := make([]byte, 0, max)
	for i := 0; i < len(name) && len(out) < max; i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z':
			out = append(out, c-'a'+'A')
		case c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			out = append(out, c)
		}
	}
	return string(out)
}

// FormatDocketNumber builds the printed docket identifier:
// DLC-<company 3>-<branch 4>-<yymmdd>-<seq 4>, e.g. "Acme Logistics" /
// "South Branch" on 2024-05-01 -> DLC-ACM-SOUT-240501-0001. The format
// appears on physical paperwork and must not change.
func FormatDocketNumber(companyName, branchName string, t time.Time, seq int64) string {
	return fmt.Sprintf("DLC-%s-%s-%s-%04d",
		DocketPrefix(companyName, 3),
		DocketPrefix(branchName, 4),
		t.Format("060102"),
		seq,
	)
}
