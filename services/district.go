package services

import "apartments-cleaner/models"

// DistrictNotProvided replaces missing district names ("not provided").
const DistrictNotProvided = "არ არის მოწოდებული"

// FillDistrictNulls replaces missing district names with DistrictNotProvided
// and returns how many cells were filled. Present values are left untouched.
func FillDistrictNulls(t *models.Table) int {
	filled := 0
	for _, r := range t.Rows {
		if models.IsMissing(r[models.ColDistrict]) {
			r[models.ColDistrict] = DistrictNotProvided
			filled++
		}
	}
	return filled
}
