package collision

// config holds the construction-time configuration of a Detector.
type config struct {
	cacheBoxes    bool
	rotationAware bool
}

func defaultConfig() config {
	return config{
		cacheBoxes:    true,
		rotationAware: true,
	}
}

// Option configures a Detector at construction time.
type Option func(*config)

// WithBoxCache enables or disables the broad-phase world-box cache. The
// cache affects query cost only, never query results.
func WithBoxCache(enabled bool) Option {
	return func(c *config) {
		c.cacheBoxes = enabled
	}
}

// WithTranslationOnly selects cheaper placement bookkeeping for scenes
// whose transforms are pure translations. A detector built with this
// option must never be given a rotating or scaling transform.
func WithTranslationOnly() Option {
	return func(c *config) {
		c.rotationAware = false
	}
}
