package dataset

// Material is a raw-material master record. UnitCost is the cost of one
// purchase lot in the material's unit of measure.
type Material struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	SizeDescription string  `json:"sizeDescription"`
	Currency        string  `json:"currency"`
	UnitCost        float64 `json:"unitCost"`
	Supplier        string  `json:"supplier,omitempty"`
	Note            string  `json:"note"`
}

// PackagingItem is a packaging-material master record.
type PackagingItem struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Unit            string  `json:"unit"`
	SizeDescription string  `json:"sizeDescription"`
	Currency        string  `json:"currency"`
	UnitCost        float64 `json:"unitCost"`
	Note            string  `json:"note"`
}

// LaborRole is a work-category master record with its hourly rate.
type LaborRole struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourlyRate"`
	Currency   string  `json:"currency"`
	Note       string  `json:"note"`
}

// Equipment is a shared-equipment master record. Acquisition cost is
// amortized over AmortizationYears when allocated to products.
type Equipment struct {
	ID                string  `json:"id"`
	Name              string  `json:"name"`
	AcquisitionCost   float64 `json:"acquisitionCost"`
	Currency          string  `json:"currency"`
	AmortizationYears float64 `json:"amortizationYears"`
	Note              string  `json:"note"`
}

// ShippingMethod is a delivery-method master record with a per-unit cost.
type ShippingMethod struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	UnitCost    float64 `json:"unitCost"`
	Currency    string  `json:"currency"`
	Note        string  `json:"note"`
}

// CategoryLarge is the top level of the three-level product category tree.
type CategoryLarge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryMedium belongs to a large category.
type CategoryMedium struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	LargeID     string `json:"largeId"`
}

// CategorySmall belongs to a medium category.
type CategorySmall struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MediumID    string `json:"mediumId"`
}

// ExpectedProduction is the total planned output over a product's life:
// Quantity units across PeriodYears years. Quantity is the denominator for
// amortizing one-time costs down to a per-unit figure.
type ExpectedProduction struct {
	Quantity    float64 `json:"quantity"`
	PeriodYears float64 `json:"periodYears"`
}

// Product is a registered product referencing master data by id.
type Product struct {
	ID                     string             `json:"id"`
	Name                   string             `json:"name"`
	CategoryLargeID        string             `json:"categoryLargeId"`
	CategoryMediumID       string             `json:"categoryMediumId"`
	CategorySmallID        string             `json:"categorySmallId"`
	Sizes                  []string           `json:"sizes"`
	Options                []string           `json:"options"`
	BaseManHours           float64            `json:"baseManHours"`
	DefaultElectricityCost float64            `json:"defaultElectricityCost"`
	RegisteredAt           string             `json:"registeredAt"`
	ProductionLotSize      int                `json:"productionLotSize"`
	ExpectedProduction     ExpectedProduction `json:"expectedProduction"`
	EquipmentIDs           []string           `json:"equipmentIds"`
}

// MaterialCostEntry records consumption of a material by one product.
// CostPerUnit is computed once at entry creation from the material's unit
// cost and the usage ratio; it is not recomputed if the master record is
// edited later.
type MaterialCostEntry struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	MaterialID  string  `json:"materialId"`
	UsageRatio  float64 `json:"usageRatio"`
	CostPerUnit float64 `json:"costPerUnit"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
}

// PackagingCostEntry records packaging consumed per produced unit.
// CostPerUnit is copied from the packaging item at entry creation.
type PackagingCostEntry struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"productId"`
	PackagingItemID string  `json:"packagingItemId"`
	Quantity        float64 `json:"quantity"`
	CostPerUnit     float64 `json:"costPerUnit"`
	Currency        string  `json:"currency"`
}

// LaborCostEntry records labor spent per produced unit. A nil
// HourlyRateOverride means the role's rate applies.
type LaborCostEntry struct {
	ID                 string   `json:"id"`
	ProductID          string   `json:"productId"`
	LaborRoleID        string   `json:"laborRoleId"`
	Hours              float64  `json:"hours"`
	PeopleCount        float64  `json:"peopleCount"`
	HourlyRateOverride *float64 `json:"hourlyRateOverride,omitempty"`
}

// OutsourcingCostEntry records an external processing cost per unit.
type OutsourcingCostEntry struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	CostPerUnit float64 `json:"costPerUnit"`
	Currency    string  `json:"currency"`
	Note        string  `json:"note"`
}

// DevelopmentCostEntry records one-time development spending (prototype
// labor, prototype materials, tooling) amortized over AmortizationYears.
type DevelopmentCostEntry struct {
	ID                    string  `json:"id"`
	ProductID             string  `json:"productId"`
	Title                 string  `json:"title"`
	PrototypeLaborCost    float64 `json:"prototypeLaborCost"`
	PrototypeMaterialCost float64 `json:"prototypeMaterialCost"`
	ToolingCost           float64 `json:"toolingCost"`
	AmortizationYears     float64 `json:"amortizationYears"`
}

// EquipmentAllocationEntry attributes a share of a piece of equipment's
// annual amortized cost to one product. When UsageHours is set across a
// product's allocation entries, proportional-by-hours allocation supersedes
// the stored AllocationRatio.
type EquipmentAllocationEntry struct {
	ID              string   `json:"id"`
	ProductID       string   `json:"productId"`
	EquipmentID     string   `json:"equipmentId"`
	AllocationRatio float64  `json:"allocationRatio"`
	AnnualQuantity  float64  `json:"annualQuantity"`
	UsageHours      *float64 `json:"usageHours,omitempty"`
}

// LogisticsCostEntry records a delivery cost per unit, copied from the
// shipping method at entry creation.
type LogisticsCostEntry struct {
	ID               string  `json:"id"`
	ProductID        string  `json:"productId"`
	ShippingMethodID string  `json:"shippingMethodId"`
	CostPerUnit      float64 `json:"costPerUnit"`
	Currency         string  `json:"currency"`
}

// ElectricityCostEntry records electricity cost per produced unit.
type ElectricityCostEntry struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"productId"`
	CostPerUnit float64 `json:"costPerUnit"`
	Currency    string  `json:"currency"`
}
