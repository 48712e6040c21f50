package analysis

import (
	"errors"
	"fmt"
	"math"

	"gaze-go/internal/models"

	"gonum.org/v1/gonum/stat"
)

// CalculateStatistics returns the mean and population standard deviation of
// each axis. If either sequence is empty the zero value is returned.
func CalculateStatistics(xs, ys []float64) models.AxisStatistics {
	if len(xs) == 0 || len(ys) == 0 {
		return models.AxisStatistics{}
	}

	xMean, xVar := stat.PopMeanVariance(xs, nil)
	yMean, yVar := stat.PopMeanVariance(ys, nil)

	return models.AxisStatistics{
		XAvg: xMean,
		YAvg: yMean,
		XStd: math.Sqrt(xVar),
		YStd: math.Sqrt(yVar),
	}
}

// NonFiniteStatisticsError is returned when the samples are valid numbers
// but a derived value overflows to ±Inf or becomes NaN.
type NonFiniteStatisticsError struct {
	Field string
}

func (e *NonFiniteStatisticsError) Error() string {
	return fmt.Sprintf("gaze coordinates out of range: %s is not finite", e.Field)
}

func checkFinite(prefix string, s models.AxisStatistics) error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"x_avg", s.XAvg},
		{"y_avg", s.YAvg},
		{"x_std", s.XStd},
		{"y_std", s.YStd},
	} {
		if math.IsInf(f.value, 0) || math.IsNaN(f.value) {
			return &NonFiniteStatisticsError{Field: prefix + f.name}
		}
	}
	return nil
}

// IsInvalidInput reports whether err was caused by the submitted samples
// rather than by the server.
func IsInvalidInput(err error) bool {
	var malformed *MalformedSampleError
	var nonFinite *NonFiniteStatisticsError
	return errors.As(err, &malformed) || errors.As(err, &nonFinite)
}
