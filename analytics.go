package main

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// epsilon pads denominators that may be zero. The constant leaks into
// results at the last significant digit for near-zero denominators, so it
// must not change.
const epsilon = 1e-10

// userInputError marks failures the caller can fix by supplying better
// input; handlers report these as 400s instead of 500s.
type userInputError string

func (e userInputError) Error() string { return string(e) }

var (
	errNoTransactions       = userInputError("No transactions provided")
	errInsufficientRisk     = userInputError("Insufficient data for risk calculations")
	errInsufficientForecast = userInputError("Insufficient data for forecasting")
)

// bucketTotals accumulates income and expense for one calendar bucket
type bucketTotals struct {
	Income  float64
	Expense float64
}

// parseTransactionDate parses a hyphen-separated Y-M-D string. Anything
// else yields the zero time, so malformed dates sort first instead of
// failing the sort.
func parseTransactionDate(s string) time.Time {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return time.Time{}
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}
		}
		nums[i] = n
	}
	return time.Date(nums[0], time.Month(nums[1]), nums[2], 0, 0, 0, 0, time.UTC)
}

// dayKey extracts the calendar-day key from a raw date field, dropping a
// trailing time-of-day component if present
func dayKey(date string) string {
	if i := strings.Index(date, " "); i >= 0 {
		return date[:i]
	}
	return date
}

// sortTransactionsByDate returns a copy sorted by parsed date, ascending,
// with unparseable dates first
func sortTransactionsByDate(txns []Transaction) []Transaction {
	sorted := make([]Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		return parseTransactionDate(sorted[i].Date).Before(parseTransactionDate(sorted[j].Date))
	})
	return sorted
}

// accumulate adds a transaction's amount to the bucket for key. Any type
// other than "income" counts as an expense, sign-normalized to positive.
func accumulate(buckets map[string]*bucketTotals, key string, txn Transaction) {
	b, ok := buckets[key]
	if !ok {
		b = &bucketTotals{}
		buckets[key] = b
	}
	if txn.Type == "income" {
		b.Income += txn.Cost
	} else {
		b.Expense += math.Abs(txn.Cost)
	}
}

// bucketByDay groups transactions into daily income/expense totals
func bucketByDay(txns []Transaction) map[string]*bucketTotals {
	buckets := make(map[string]*bucketTotals)
	for _, txn := range txns {
		accumulate(buckets, dayKey(txn.Date), txn)
	}
	return buckets
}

// bucketByMonth groups transactions into monthly totals keyed YYYY-MM.
// Transactions whose day key carries no hyphen are dropped.
func bucketByMonth(txns []Transaction) map[string]*bucketTotals {
	buckets := make(map[string]*bucketTotals)
	for _, txn := range txns {
		key := dayKey(txn.Date)
		if !strings.Contains(key, "-") {
			continue
		}
		parts := strings.Split(key, "-")
		accumulate(buckets, parts[0]+"-"+parts[1], txn)
	}
	return buckets
}

// netSeries flattens buckets into parallel slices of sorted keys and
// net (income minus expense) values
func netSeries(buckets map[string]*bucketTotals) ([]string, []float64) {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	nets := make([]float64, len(keys))
	for i, k := range keys {
		nets[i] = buckets[k].Income - buckets[k].Expense
	}
	return keys, nets
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// populationVariance uses divisor N, not N-1
func populationVariance(values []float64) float64 {
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return sum / float64(len(values))
}

func populationStdDev(values []float64) float64 {
	return math.Sqrt(populationVariance(values))
}

// percentile computes the p-th percentile with linear interpolation
// between order statistics
func percentile(values []float64, p float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// movingAverage smooths values with a uniform trailing window; the output
// has len(values)-window+1 points, each aligned to its window's last element
func movingAverage(values []float64, window int) []float64 {
	out := make([]float64, 0, len(values)-window+1)
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out = append(out, sum/float64(window))
		}
	}
	return out
}

// growthRates computes consecutive percentage changes, epsilon-guarded
// against zero previous values
func growthRates(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	rates := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		rates[i-1] = (values[i] - values[i-1]) / (math.Abs(values[i-1]) + epsilon) * 100
	}
	return rates
}

// linearFit solves ordinary least squares for y against indices 0..n-1
// via the normal equations
func linearFit(y []float64) (slope, intercept float64) {
	n := float64(len(y))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range y {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	slope = (n*sumXY - sumX*sumY) / (n*sumXX - sumX*sumX)
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}

// computeStatistics derives descriptive statistics over the transaction
// amounts, with expense amounts sign-normalized to positive
func computeStatistics(txns []Transaction) (*Statistics, error) {
	if len(txns) == 0 {
		return nil, errNoTransactions
	}

	amounts := make([]float64, len(txns))
	for i, txn := range txns {
		amount := txn.Cost
		if txn.Type == "expense" {
			amount = math.Abs(amount)
		}
		amounts[i] = amount
	}

	sorted := make([]float64, len(amounts))
	copy(sorted, amounts)
	sort.Float64s(sorted)

	total := 0.0
	for _, a := range amounts {
		total += a
	}

	return &Statistics{
		Mean:         mean(amounts),
		Median:       percentile(amounts, 50),
		StdDeviation: populationStdDev(amounts),
		Variance:     populationVariance(amounts),
		Min:          sorted[0],
		Max:          sorted[len(sorted)-1],
		Total:        total,
		Count:        len(amounts),
		Percentiles: Percentiles{
			P25: percentile(amounts, 25),
			P50: percentile(amounts, 50),
			P75: percentile(amounts, 75),
			P90: percentile(amounts, 90),
		},
	}, nil
}

// computeTrends buckets transactions by day and smooths the net series
// with a trailing moving average of width windowSize
func computeTrends(txns []Transaction, windowSize int) (*Trends, error) {
	if len(txns) == 0 {
		return nil, errNoTransactions
	}
	if windowSize < 1 {
		return nil, userInputError("window_size must be at least 1")
	}

	buckets := bucketByDay(sortTransactionsByDate(txns))
	dates, nets := netSeries(buckets)

	if len(nets) < windowSize {
		// Too few days to smooth: report the raw series
		return &Trends{
			Dates:         dates,
			MovingAverage: nets,
			NetValues:     nets,
		}, nil
	}

	trends := &Trends{
		Dates:         dates[windowSize-1:],
		MovingAverage: movingAverage(nets, windowSize),
		NetValues:     nets,
	}
	if rates := growthRates(nets); len(rates) > 0 {
		trends.AverageGrowthRate = mean(rates)
		trends.Volatility = populationStdDev(rates)
	}
	return trends, nil
}

// computeRiskMetrics derives daily returns from net balances and reports
// volatility, Sharpe ratio, Value-at-Risk, and maximum drawdown
func computeRiskMetrics(txns []Transaction, riskFreeRate float64) (*RiskMetrics, error) {
	if len(txns) == 0 {
		return nil, errNoTransactions
	}

	dates, nets := netSeries(bucketByDay(txns))
	if len(nets) < 2 {
		return nil, errInsufficientRisk
	}

	returns := make([]float64, len(nets)-1)
	for i := 1; i < len(nets); i++ {
		returns[i-1] = (nets[i] - nets[i-1]) / (math.Abs(nets[i-1]) + epsilon)
	}

	meanReturn := mean(returns)
	volatility := populationStdDev(returns)

	// Sharpe assumes daily returns against an annualized risk-free rate
	sharpe := 0.0
	if volatility > 0 {
		sharpe = (meanReturn - riskFreeRate/365) / (volatility + epsilon)
	}

	// Drawdown of the cumulative net series against its running peak
	maxDrawdown := math.Inf(1)
	cumulative := 0.0
	runningMax := math.Inf(-1)
	for _, v := range nets {
		cumulative += v
		if cumulative > runningMax {
			runningMax = cumulative
		}
		dd := (cumulative - runningMax) / (runningMax + epsilon)
		if dd < maxDrawdown {
			maxDrawdown = dd
		}
	}

	return &RiskMetrics{
		Volatility:    volatility,
		Variance:      populationVariance(returns),
		MeanReturn:    meanReturn,
		SharpeRatio:   sharpe,
		ValueAtRisk95: percentile(returns, 5),
		MaxDrawdown:   maxDrawdown,
		TotalDays:     len(dates),
	}, nil
}

// computeForecast fits a least-squares line to monthly net values and
// projects it forecastDays/30 + 1 points forward
func computeForecast(txns []Transaction, forecastDays int) (*Forecast, error) {
	if len(txns) == 0 {
		return nil, errNoTransactions
	}
	if forecastDays < 0 {
		return nil, userInputError("forecast_days must not be negative")
	}

	months, nets := netSeries(bucketByMonth(txns))
	if len(nets) < 2 {
		return nil, errInsufficientForecast
	}

	slope, intercept := linearFit(nets)

	steps := forecastDays/30 + 1
	forecastMonths := make([]string, steps)
	forecastValues := make([]float64, steps)
	for i := 0; i < steps; i++ {
		forecastMonths[i] = fmt.Sprintf("Forecast_%d", i+1)
		forecastValues[i] = slope*float64(len(nets)+i) + intercept
	}

	return &Forecast{
		HistoricalMonths: months,
		HistoricalValues: nets,
		ForecastMonths:   forecastMonths,
		ForecastValues:   forecastValues,
		TrendSlope:       slope,
		TrendIntercept:   intercept,
	}, nil
}
