package interval

import "fmt"

// DistributionKind names the sampling distributions the estimators draw
// quantiles from.
type DistributionKind string

const (
	KindNormal     DistributionKind = "normal"
	KindStudentsT  DistributionKind = "students_t"
	KindChiSquared DistributionKind = "chi_squared"
)

// Distribution identifies the sampling distribution handed to the quantile
// collaborator. Degrees of freedom is meaningful for Student's t and
// chi-squared only.
type Distribution struct {
	Kind             DistributionKind
	DegreesOfFreedom float64
}

// Normal is the standard normal distribution.
func Normal() Distribution {
	return Distribution{Kind: KindNormal}
}

// StudentsT is Student's t distribution with the given degrees of freedom.
func StudentsT(degreesOfFreedom float64) Distribution {
	return Distribution{Kind: KindStudentsT, DegreesOfFreedom: degreesOfFreedom}
}

// ChiSquared is the chi-squared distribution with the given degrees of freedom.
func ChiSquared(degreesOfFreedom float64) Distribution {
	return Distribution{Kind: KindChiSquared, DegreesOfFreedom: degreesOfFreedom}
}

func (d Distribution) String() string {
	switch d.Kind {
	case KindNormal:
		return "normal"
	default:
		return fmt.Sprintf("%s(df=%g)", d.Kind, d.DegreesOfFreedom)
	}
}

// Quantiler is the external distribution collaborator: the inverse CDF of the
// given distribution at probability p in (0,1). Implementations live in
// adapters; the estimators treat it as a trusted numeric library and
// propagate its failures untouched.
type Quantiler interface {
	Quantile(dist Distribution, p float64) (float64, error)
}
