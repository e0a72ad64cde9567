package dto

// UpdateFeeScheduleRequest represents a full replacement of one department's
// fee schedule
type UpdateFeeScheduleRequest struct {
	PerUnit         float64 `json:"perUnit" binding:"gte=0" example:"365"`
	FixedFee        float64 `json:"fixedFee" binding:"gte=0" example:"0"`
	MiscFee         float64 `json:"miscFee" binding:"gte=0" example:"2500"`
	LabFeePerUnit   float64 `json:"labFeePerUnit" binding:"gte=0" example:"150"`
	LibraryFee      float64 `json:"libraryFee" binding:"gte=0" example:"500"`
	AthleticFee     float64 `json:"athleticFee" binding:"gte=0" example:"200"`
	MedicalFee      float64 `json:"medicalFee" binding:"gte=0" example:"300"`
	RegistrationFee float64 `json:"registrationFee" binding:"gte=0" example:"1000"`
}
