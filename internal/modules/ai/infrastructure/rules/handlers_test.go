package rules

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGreetingReturnsKnownVariant(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Contains(t, greetings, Greeting())
	}
}

func TestCalculateBMIValue(t *testing.T) {
	// 70kg / 1.75m^2 = 22.9
	result := CalculateBMI(70, 175)
	assert.Contains(t, result, "**22.9**")
	assert.Contains(t, result, "Normal weight")
}

func TestCalculateBMIBucketBoundaries(t *testing.T) {
	// 分档比较用原始值，边界值归入上一档
	tests := []struct {
		name     string
		weight   float64
		height   float64
		category string
	}{
		{"underweight", 50, 175, "Underweight"},      // 16.3
		{"exactly 18.5", 18.5, 100, "Normal weight"}, // bmi == 18.5
		{"exactly 25", 25, 100, "Overweight"},        // bmi == 25
		{"exactly 30", 30, 100, "Obese"},             // bmi == 30
		{"obese", 120, 170, "Obese"},                 // 41.5
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, CalculateBMI(tt.weight, tt.height), tt.category)
		})
	}
}

func TestCalculateBMIInvalidInput(t *testing.T) {
	for _, result := range []string{CalculateBMI(0, 175), CalculateBMI(70, 0), CalculateBMI(-5, 175)} {
		assert.Contains(t, result, "Please provide valid weight")
	}
}

func TestCalculateCaloriesMaleSedentary(t *testing.T) {
	// BMR = 10*70 + 6.25*175 - 5*25 + 5 = 1673.75; *1.2 = 2008.5 → 2009
	result := CalculateCalories(70, 175, 25, "male", "sedentary")
	assert.Contains(t, result, "Maintenance: **2009 calories/day**")
	assert.Contains(t, result, "Weight Loss: **1509 calories/day**")
	assert.Contains(t, result, "Weight Gain: **2509 calories/day**")
	// 蛋白质 1.8g/kg
	assert.Contains(t, result, "Protein: 126g/day")
}

func TestCalculateCaloriesFemale(t *testing.T) {
	// BMR = 10*60 + 6.25*165 - 5*30 - 161 = 1320.25; *1.55 = 2046.3875 → 2046
	result := CalculateCalories(60, 165, 30, "female", "moderate")
	assert.Contains(t, result, "Maintenance: **2046 calories/day**")
}

func TestCalculateCaloriesUnknownActivityDefaultsModerate(t *testing.T) {
	known := CalculateCalories(70, 175, 25, "male", "moderate")
	unknown := CalculateCalories(70, 175, 25, "male", "extreme")
	// 活动系数未知时按 moderate 计算，只有标签文本不同
	knownLine := known[strings.Index(known, "Maintenance"):]
	unknownLine := unknown[strings.Index(unknown, "Maintenance"):]
	assert.Equal(t, knownLine, unknownLine)
}

func TestCalculateCaloriesInvalidInput(t *testing.T) {
	assert.Contains(t, CalculateCalories(0, 0, 0, "male", "moderate"), "Please provide valid weight")
}

func TestFAQHit(t *testing.T) {
	answer := FAQ("How do I do a push up correctly?")
	assert.Contains(t, answer, "Push-ups")
}

func TestFAQMiss(t *testing.T) {
	assert.Empty(t, FAQ("how do I train for a triathlon"))
}

func TestFAQCaseInsensitive(t *testing.T) {
	assert.NotEmpty(t, FAQ("what is PROTEIN good for"))
}

func TestFAQTopicsMatchesDatabase(t *testing.T) {
	topics := FAQTopics()
	assert.Len(t, topics, len(faqDatabase))
	for _, topic := range topics {
		assert.Contains(t, faqDatabase, topic)
	}
}
