package main

// Transaction represents a financial transaction supplied in a request body
type Transaction struct {
	Date string  `json:"date"`
	Cost float64 `json:"cost"`
	Type string  `json:"type"`
}

// AnalysisRequest is the shared request body for all analytics endpoints.
// Optional parameters are pointers so an absent field can be told apart
// from an explicit zero.
type AnalysisRequest struct {
	Transactions []Transaction `json:"transactions"`
	WindowSize   *int          `json:"window_size"`
	RiskFreeRate *float64      `json:"risk_free_rate"`
	ForecastDays *int          `json:"forecast_days"`
}

// Percentiles contains selected percentiles of the amount distribution
type Percentiles struct {
	P25 float64 `json:"25th"`
	P50 float64 `json:"50th"`
	P75 float64 `json:"75th"`
	P90 float64 `json:"90th"`
}

// Statistics contains descriptive statistics over transaction amounts
type Statistics struct {
	Mean         float64     `json:"mean"`
	Median       float64     `json:"median"`
	StdDeviation float64     `json:"std_deviation"`
	Variance     float64     `json:"variance"`
	Min          float64     `json:"min"`
	Max          float64     `json:"max"`
	Total        float64     `json:"total"`
	Count        int         `json:"count"`
	Percentiles  Percentiles `json:"percentiles"`
}

// Trends contains the smoothed daily net series and growth-rate summary
type Trends struct {
	Dates             []string  `json:"dates"`
	MovingAverage     []float64 `json:"moving_average"`
	NetValues         []float64 `json:"net_values"`
	AverageGrowthRate float64   `json:"average_growth_rate"`
	Volatility        float64   `json:"volatility"`
}

// RiskMetrics contains risk measures derived from daily returns
type RiskMetrics struct {
	Volatility    float64 `json:"volatility"`
	Variance      float64 `json:"variance"`
	MeanReturn    float64 `json:"mean_return"`
	SharpeRatio   float64 `json:"sharpe_ratio"`
	ValueAtRisk95 float64 `json:"value_at_risk_95"`
	MaxDrawdown   float64 `json:"max_drawdown"`
	TotalDays     int     `json:"total_days"`
}

// Forecast contains the fitted monthly trend and projected points
type Forecast struct {
	HistoricalMonths []string  `json:"historical_months"`
	HistoricalValues []float64 `json:"historical_values"`
	ForecastMonths   []string  `json:"forecast_months"`
	ForecastValues   []float64 `json:"forecast_values"`
	TrendSlope       float64   `json:"trend_slope"`
	TrendIntercept   float64   `json:"trend_intercept"`
}
