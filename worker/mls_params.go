package worker

import (
	"time"

	"github.com/brojonat/gestate/mls"
	"github.com/brojonat/gestate/server"
)

// getListingParams narrows the default feed query to the configured region
// and, after the first sync, to listings modified since then.
func getListingParams(ms server.MLSSettings) map[string]string {
	params := mls.DefaultListingParams()
	params["region_id"] = ms.RegionID
	if ms.LastSyncAt != nil {
		params["modified_since"] = ms.LastSyncAt.UTC().Format(time.RFC3339)
	}
	return params
}
