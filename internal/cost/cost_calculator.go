package cost

import (
	"math"

	"github.com/hwpayoff/runtime/contracts"
)

// TokensPerDay converts a throughput into daily tokens over dailyHours.
func TokensPerDay(tokPerSec, dailyHours float64) float64 {
	return tokPerSec * contracts.SecondsPerHour * dailyHours
}

// HoursNeeded returns how many hours a backend with tokPerSec throughput needs
// to produce tokensPerDay. It is +Inf when tokPerSec is not positive.
func HoursNeeded(tokensPerDay, tokPerSec float64) float64 {
	if tokPerSec <= 0 {
		return math.Inf(1)
	}
	return tokensPerDay / (tokPerSec * contracts.SecondsPerHour)
}

// HourlyDailyCost prices hoursNeeded at ratePerHour. A zero rate costs nothing
// even when the hours are unbounded.
func HourlyDailyCost(hoursNeeded, ratePerHour float64) float64 {
	if ratePerHour == 0 {
		return 0
	}
	return hoursNeeded * ratePerHour
}

// BlendedRate combines input and output prices per 1M tokens, billing
// inputShare of the tokens at the input rate.
func BlendedRate(inputPer1M, outputPer1M, inputShare float64) float64 {
	return inputPer1M*inputShare + outputPer1M*(1-inputShare)
}

// APIDailyCost prices tokensPerDay at a per-1M-token rate.
func APIDailyCost(tokensPerDay, ratePer1M float64) float64 {
	return tokensPerDay / contracts.TokensPerMillion * ratePer1M
}

// PayoffDays returns how many days of dailyCost add up to hardwarePrice.
// It is +Inf when dailyCost is not positive.
func PayoffDays(hardwarePrice, dailyCost float64) float64 {
	if !(dailyCost > 0) {
		return math.Inf(1)
	}
	return hardwarePrice / dailyCost
}

// NewPayoff builds the shared cost/payoff block for a daily cost.
func NewPayoff(hardwarePrice, dailyCost float64) contracts.Payoff {
	days := PayoffDays(hardwarePrice, dailyCost)
	return contracts.Payoff{
		DailyCost:    dailyCost,
		MonthlyCost:  dailyCost * contracts.DaysPerMonth,
		PayoffDays:   days,
		PayoffMonths: days / contracts.DaysPerMonth,
	}
}

// SpeedRatio compares a remote throughput with the local one.
// It is +Inf when localTPS is zero.
func SpeedRatio(remoteTPS, localTPS float64) float64 {
	if localTPS <= 0 {
		return math.Inf(1)
	}
	return remoteTPS / localTPS
}

// inputShareOrDefault clamps a configured input share into [0, 1], falling
// back to the default for NaN.
func inputShareOrDefault(share float64) float64 {
	switch {
	case math.IsNaN(share):
		return contracts.DefaultInputTokenShare
	case share < 0:
		return 0
	case share > 1:
		return 1
	default:
		return share
	}
}
