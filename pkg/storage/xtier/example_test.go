package xtier_test

import (
	"fmt"

	"github.com/omeyang/adkit/pkg/storage/xtier"
)

func ExampleFingerprint() {
	fp := xtier.Fingerprint("tenant-1", "search", map[string]string{
		"query":     "SELECT campaign.id FROM campaign",
		"page_size": "1000",
	})
	fmt.Println(fp)
	// Output: client:tenant-1:search:page_size=1000:query=SELECT campaign.id FROM campaign
}

func ExampleServiceTTL() {
	fmt.Println(xtier.ServiceTTL("customer"))
	fmt.Println(xtier.ServiceTTL("unknown"))
	// Output:
	// 24h0m0s
	// 5m0s
}
