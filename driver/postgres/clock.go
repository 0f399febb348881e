package postgres

import "time"

// nowFunc is swappable in tests that assert derived feed health.
var nowFunc = time.Now
