package translate

import (
	"github.com/eyeMNaughtReal/gutcheck-sync/pkg/types"
)

// milligramsPerGram is the exact sodium conversion divisor. Meals store
// sodium in milligrams; the platform category is gram-denominated.
const milligramsPerGram = 1000.0

// millilitersPerLiter is the exact water conversion divisor.
const millilitersPerLiter = 1000.0

// MealRecords sums nutrients across the meal's line items and emits one
// record per nutrient whose total is strictly greater than zero. Missing
// values sum as zero; they never poison the total.
func MealRecords(meal types.Meal) []types.TranslatedRecord {
	var calories, protein, carbs, fat, fiber, sugar, sodiumMg float64
	for _, item := range meal.Items {
		calories += item.Calories
		protein += item.Protein
		carbs += item.Carbs
		fat += item.Fat
		fiber += item.Fiber
		sugar += item.Sugar
		sodiumMg += item.SodiumMg
	}

	var records []types.TranslatedRecord
	emit := func(category types.Category, value float64) {
		if value <= 0 {
			return
		}
		records = append(records, types.TranslatedRecord{
			Category: category,
			Value:    value,
			Unit:     category.Unit(),
			Start:    meal.AteAt,
			End:      meal.AteAt,
			Metadata: entityMetadata(meal, "meal"),
		})
	}

	emit(types.CategoryDietaryEnergy, calories)
	emit(types.CategoryDietaryProtein, protein)
	emit(types.CategoryDietaryCarbohydrates, carbs)
	emit(types.CategoryDietaryFat, fat)
	emit(types.CategoryDietaryFiber, fiber)
	emit(types.CategoryDietarySugar, sugar)
	emit(types.CategoryDietarySodium, sodiumMg/milligramsPerGram)
	return records
}

// WaterRecords emits one liter-denominated record for a logged drink.
func WaterRecords(water types.WaterIntake) []types.TranslatedRecord {
	if water.AmountML <= 0 {
		return nil
	}
	return []types.TranslatedRecord{{
		Category: types.CategoryDietaryWater,
		Value:    water.AmountML / millilitersPerLiter,
		Unit:     types.CategoryDietaryWater.Unit(),
		Start:    water.DrankAt,
		End:      water.DrankAt,
		Metadata: entityMetadata(water, "water_intake"),
	}}
}

func entityMetadata(e types.Entity, kind string) map[string]string {
	return map[string]string{
		"entity_id":   e.EntityID(),
		"entity_type": kind,
		"owner":       e.Owner(),
	}
}
