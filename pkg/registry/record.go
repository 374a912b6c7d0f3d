package registry

// Record mirrors the product JSON published by the Z-Wave Alliance product
// registry. Only the fields the manifest builder reads are modelled; every
// scalar is a Value because the registry is inconsistent about types.
type Record struct {
	ID                      Value                        `json:"Id"`
	Name                    Value                        `json:"Name"`
	Brand                   Value                        `json:"Brand"`
	CertificationNumber     Value                        `json:"CertificationNumber"`
	ManufacturerID          Value                        `json:"ManufacturerId"`
	ProductTypeID           Value                        `json:"ProductTypeId"`
	ProductID               Value                        `json:"ProductId"`
	ManualURL               Value                        `json:"ManualUrl"`
	Image                   Value                        `json:"Image"`
	InclusionDescription    Value                        `json:"InclusionDescription"`
	ExclusionDescription    Value                        `json:"ExclusionDescription"`
	ConfigurationParameters List[ConfigurationParameter] `json:"ConfigurationParameters"`
	AssociationGroups       List[AssociationGroup]       `json:"AssociationGroups"`
}

// ConfigurationParameter describes one vendor tunable.
type ConfigurationParameter struct {
	ParameterNumber Value            `json:"ParameterNumber"`
	Name            Value            `json:"Name"`
	Description     Value            `json:"Description"`
	Size            Value            `json:"Size"`
	DefaultValue    Value            `json:"DefaultValue"`
	Values          List[ValueRange] `json:"ConfigurationParameterValues"`
}

// ValueRange is one (from, to, description) triple of a parameter's value
// space.
type ValueRange struct {
	From        Value `json:"From"`
	To          Value `json:"To"`
	Description Value `json:"Description"`
}

// BoundsPresent reports, independently, whether the lower and upper bound
// keys were present. A zero bound is present; a missing key is not.
func (r ValueRange) BoundsPresent() (lower, upper bool) {
	return r.From.Present(), r.To.Present()
}

// AssociationGroup is a vendor-defined association (peer) group.
type AssociationGroup struct {
	GroupNumber  Value `json:"GroupNumber"`
	Description  Value `json:"Description"`
	MaximumNodes Value `json:"MaximumNodes"`
}
