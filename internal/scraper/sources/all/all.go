// Package all registers every supported source via side-effect imports.
package all

import (
	_ "github.com/hputnam/oddsboard/internal/scraper/sources/draftkings"
	_ "github.com/hputnam/oddsboard/internal/scraper/sources/espn"
)
