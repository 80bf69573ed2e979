package app

import "time"

// Config is the full configuration surface, settable by flag or environment
// variable. Every option has a workable built-in default.
type Config struct {
	Listen           string `arg:"-l,--listen,env:LISTEN" default:"0.0.0.0:2004" json:"listen" help:"network address to listen on"`
	EventRelays      string `arg:"--eventrelays,env:EVENT_RELAYS" json:"event_relays" help:"comma separated default relays for event lookups"`
	ProfileRelays    string `arg:"--profilerelays,env:PROFILE_RELAYS" json:"profile_relays" help:"comma separated default relays for profile lookups, falls back to the event relay list"`
	QueryTimeout     int    `arg:"--querytimeout,env:QUERY_TIMEOUT" default:"3000" json:"query_timeout" help:"per query timeout in milliseconds"`
	ProfileTimeout   int    `arg:"--profiletimeout,env:PROFILE_QUERY_TIMEOUT" json:"profile_timeout" help:"per profile query timeout in milliseconds, 0 uses the query timeout"`
	RetryTimeout     int    `arg:"--retrytimeout,env:RETRY_TIMEOUT" default:"5000" json:"retry_timeout" help:"expansion retry timeout in milliseconds"`
	ProfileCacheTTL  int    `arg:"--profilecachettl,env:PROFILE_CACHE_TTL" default:"60000" json:"profile_cache_ttl" help:"profile cache entry lifetime in milliseconds"`
	ResponseCacheTTL int    `arg:"--responsecachettl,env:RESPONSE_CACHE_TTL" default:"3600000" json:"response_cache_ttl" help:"event and article response cache lifetime in milliseconds"`
	LogLevel         string `arg:"--loglevel,env:LOG_LEVEL" default:"info" json:"-" help:"set log level [off,fatal,error,warn,info,debug,trace]"`
}

func ms(v int) time.Duration { return time.Duration(v) * time.Millisecond }

// QueryTimeoutD and friends convert the millisecond knobs to durations.
func (c *Config) QueryTimeoutD() time.Duration     { return ms(c.QueryTimeout) }
func (c *Config) ProfileTimeoutD() time.Duration   { return ms(c.ProfileTimeout) }
func (c *Config) RetryTimeoutD() time.Duration     { return ms(c.RetryTimeout) }
func (c *Config) ProfileCacheTTLD() time.Duration  { return ms(c.ProfileCacheTTL) }
func (c *Config) ResponseCacheTTLD() time.Duration { return ms(c.ResponseCacheTTL) }
