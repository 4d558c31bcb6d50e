package retry

import "time"

// Policy is a fixed-attempt, fixed-delay retry schedule. Order placement and
// closing both run under the same policy, so it lives here rather than being
// duplicated at each call site.
type Policy struct {
	Attempts int
	Delay    time.Duration

	// Sleep is swapped out in tests; nil means time.Sleep.
	Sleep func(time.Duration)
}

// Do runs op until it returns nil or the policy's attempts are exhausted,
// sleeping the fixed delay after every failed attempt. The attempt number
// passed to op is 1-based. Do returns the last error when all attempts fail.
func Do(p Policy, op func(attempt int) error) error {
	if p.Attempts <= 0 {
		p.Attempts = 1
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var err error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		if err = op(attempt); err == nil {
			return nil
		}
		sleep(p.Delay)
	}
	return err
}
