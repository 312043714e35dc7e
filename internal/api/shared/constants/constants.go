package constants

import "time"

const (
	SEED_AND_STARTUP_TIMEOUT   = 2 * time.Hour
	SCRAPE_AND_EXTRACT_TIMEOUT = 2 * time.Hour
	SCRAPE_PAGES_TIMEOUT       = time.Hour
	DISCOVER_LINKS_TIMEOUT     = 2 * time.Hour
	EMBED_ENTITIES_TIMEOUT     = time.Hour
)
