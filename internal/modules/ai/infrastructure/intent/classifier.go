package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intent 用户消息的分类意图
type Intent string

const (
	IntentGreeting Intent = "greeting"
	IntentBMI      Intent = "bmi_calculation"
	IntentCalorie  Intent = "calorie_calculation"
	IntentFAQ      Intent = "faq"
	IntentComplex  Intent = "complex_question"
)

// BMIData 从消息中抽取的 BMI 参数
type BMIData struct {
	Weight float64
	Height float64
}

// CalorieData 从消息中抽取的热量计算参数
type CalorieData struct {
	Weight float64
	Height float64
	Age    int
}

// Result 分类结果，抽取数据按意图分字段承载
type Result struct {
	Intent     Intent
	Confidence float64
	BMI        *BMIData
	Calorie    *CalorieData
	Keyword    string
}

// 意图按优先级顺序匹配，先命中先返回，不回溯。
// 纯字符串/正则匹配，无网络调用——它决定是否需要昂贵的远端调用。
var (
	greetingPattern = regexp.MustCompile(`^(hi|hello|halo|hai|hey|pagi|siang|malam|selamat|good morning|good afternoon|good evening)`)
	bmiPattern      = regexp.MustCompile(`bmi|body mass index|indeks massa tubuh|hitung bmi`)
	caloriePattern1 = regexp.MustCompile(`(berapa|hitung|calculate).*(kalori|calorie|calories|tdee|kebutuhan kalori)`)
	caloriePattern2 = regexp.MustCompile(`(kalori|calorie).*(harian|daily|per hari|butuh|need)`)
)

var faqKeywords = []string{
	"apa itu", "what is", "pengertian", "definisi", "definition",
	"push up", "pull up", "squat", "plank", "cardio", "protein",
	"carbohydrate", "karbohidrat", "lemak", "fat", "rest day",
	"recovery", "stretching", "warm up", "cool down",
}

// BMI 参数抽取模式，命中第一个即停
var bmiExtractPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\d+)\s*kg.*?(\d+)\s*cm`),
	regexp.MustCompile(`(?i)bb\s*(\d+).*?tb\s*(\d+)`),
	regexp.MustCompile(`(?i)weight\s*(\d+).*?height\s*(\d+)`),
	regexp.MustCompile(`(?i)berat\s*(\d+).*?tinggi\s*(\d+)`),
}

var (
	weightExtract = regexp.MustCompile(`(?i)(\d+)\s*kg`)
	heightExtract = regexp.MustCompile(`(?i)(\d+)\s*cm`)
	ageExtract    = regexp.MustCompile(`(?i)(\d+)\s*(tahun|years?|yo)`)
)

// Classify 把用户消息映射到意图及可选的结构化抽取数据
func Classify(message string) Result {
	lowerMsg := strings.TrimSpace(strings.ToLower(message))

	if greetingPattern.MatchString(lowerMsg) {
		return Result{Intent: IntentGreeting, Confidence: 1.0}
	}

	if bmiPattern.MatchString(lowerMsg) {
		data := extractBMIData(message)
		confidence := 0.7
		if data != nil {
			confidence = 0.9
		}
		return Result{Intent: IntentBMI, Confidence: confidence, BMI: data}
	}

	if caloriePattern1.MatchString(lowerMsg) || caloriePattern2.MatchString(lowerMsg) {
		data := extractCalorieData(message)
		confidence := 0.7
		if data != nil {
			confidence = 0.9
		}
		return Result{Intent: IntentCalorie, Confidence: confidence, Calorie: data}
	}

	for _, keyword := range faqKeywords {
		if strings.Contains(lowerMsg, keyword) {
			return Result{Intent: IntentFAQ, Confidence: 0.8, Keyword: keyword}
		}
	}

	return Result{Intent: IntentComplex, Confidence: 1.0}
}

func extractBMIData(message string) *BMIData {
	for _, pattern := range bmiExtractPatterns {
		match := pattern.FindStringSubmatch(message)
		if match != nil {
			weight, _ := strconv.ParseFloat(match[1], 64)
			height, _ := strconv.ParseFloat(match[2], 64)
			return &BMIData{Weight: weight, Height: height}
		}
	}
	return nil
}

func extractCalorieData(message string) *CalorieData {
	weightMatch := weightExtract.FindStringSubmatch(message)
	heightMatch := heightExtract.FindStringSubmatch(message)
	ageMatch := ageExtract.FindStringSubmatch(message)

	if weightMatch == nil || heightMatch == nil || ageMatch == nil {
		return nil
	}

	weight, _ := strconv.ParseFloat(weightMatch[1], 64)
	height, _ := strconv.ParseFloat(heightMatch[1], 64)
	age, _ := strconv.Atoi(ageMatch[1])
	return &CalorieData{Weight: weight, Height: height, Age: age}
}
