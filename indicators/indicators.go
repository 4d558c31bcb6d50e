package indicators

import "fmt"

// SMA calculates the Simple Moving Average of the trailing period closes.
func SMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period {
		return 0, fmt.Errorf("not enough closes: need %d, got %d", period, len(closes))
	}

	sum := 0.0
	for i := len(closes) - period; i < len(closes); i++ {
		sum += closes[i]
	}
	return sum / float64(period), nil
}

// EMA calculates the Exponential Moving Average for the given period, seeded
// with the SMA of the first period values.
func EMA(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period {
		return 0, fmt.Errorf("not enough closes: need %d, got %d", period, len(closes))
	}

	multiplier := 2.0 / float64(period+1)

	sma := 0.0
	for i := 0; i < period; i++ {
		sma += closes[i]
	}
	ema := sma / float64(period)

	for i := period; i < len(closes); i++ {
		ema = (closes[i]-ema)*multiplier + ema
	}

	return ema, nil
}

// RSI calculates the Relative Strength Index with Wilder smoothing over the
// full close series. A series with no losses returns 100.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("period must be positive, got %d", period)
	}
	if len(closes) < period+1 {
		return 0, fmt.Errorf("not enough closes: need %d, got %d", period+1, len(closes))
	}

	var gain, loss float64
	for i := 1; i <= period; i++ {
		d := closes[i] - closes[i-1]
		if d > 0 {
			gain += d
		} else {
			loss -= d
		}
	}
	avgGain := gain / float64(period)
	avgLoss := loss / float64(period)

	for i := period + 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		var g, l float64
		if d > 0 {
			g = d
		} else {
			l = -d
		}
		avgGain = (avgGain*float64(period-1) + g) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + l) / float64(period)
	}

	if avgLoss == 0 {
		return 100, nil
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs), nil
}
