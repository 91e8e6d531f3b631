package rules

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// 规则应答器：纯函数、无 I/O，命中后完全绕开 AI 后端。

var greetings = []string{
	"Hi! I'm FitBuddy 💪 Your personal fitness assistant. Ask me about workouts, nutrition, or fitness calculations!",
	"Hello! Ready to crush your fitness goals? I can help with workout advice, meal plans, BMI calculations, and more!",
	"Hey there! FitBuddy here. What can I help you with today? Try asking about exercises, nutrition, or let me calculate your fitness metrics!",
}

// Greeting 随机返回一条固定问候语
func Greeting() string {
	return greetings[rand.Intn(len(greetings))]
}

// CalculateBMI 计算 BMI 并返回格式化结果。
// 展示值保留一位小数，分档比较用原始值。
func CalculateBMI(weight, height float64) string {
	if weight <= 0 || height <= 0 {
		return "Please provide valid weight (kg) and height (cm) values. Example: 'Calculate my BMI, weight 70kg height 175cm'"
	}

	bmi := weight / math.Pow(height/100, 2)
	var category, advice string

	switch {
	case bmi < 18.5:
		category = "Underweight"
		advice = "Consider increasing calorie intake and strength training to build muscle mass."
	case bmi < 25:
		category = "Normal weight"
		advice = "Great! Maintain your healthy lifestyle with balanced diet and regular exercise."
	case bmi < 30:
		category = "Overweight"
		advice = "Consider a calorie deficit diet and increase cardio exercises."
	default:
		category = "Obese"
		advice = "Consult with a healthcare professional. Focus on gradual weight loss through diet and exercise."
	}

	return fmt.Sprintf("📊 **BMI Calculation Result**\n\n"+
		"Your BMI: **%.1f** (%s)\n\n"+
		"**BMI Categories:**\n"+
		"• Underweight: < 18.5\n"+
		"• Normal: 18.5 - 24.9\n"+
		"• Overweight: 25 - 29.9\n"+
		"• Obese: ≥ 30\n\n"+
		"**Advice:** %s", bmi, category, advice)
}

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalculateCalories 用 Mifflin-St Jeor 公式计算每日热量需求。
// 取整使用 math.Round（四舍五入、半值远离零），与展示给用户的卡路里目标一致。
// 已知限制：调用方在参数缺失时默认 gender=male、activityLevel=moderate，不再追问用户。
func CalculateCalories(weight, height float64, age int, gender, activityLevel string) string {
	if weight <= 0 || height <= 0 || age <= 0 {
		return "Please provide valid weight (kg), height (cm), and age values."
	}

	var bmr float64
	if gender == "male" {
		bmr = 10*weight + 6.25*height - 5*float64(age) + 5
	} else {
		bmr = 10*weight + 6.25*height - 5*float64(age) - 161
	}

	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = activityMultipliers["moderate"]
	}
	tdee := bmr * multiplier

	return fmt.Sprintf("🔥 **Daily Calorie Needs**\n\n"+
		"Based on your profile:\n"+
		"• Weight: %gkg\n"+
		"• Height: %gcm\n"+
		"• Age: %d years\n"+
		"• Gender: %s\n"+
		"• Activity: %s\n\n"+
		"**Your Daily Calorie Needs:**\n"+
		"• Maintenance: **%d calories/day**\n"+
		"• Weight Loss: **%d calories/day** (-0.5kg/week)\n"+
		"• Weight Gain: **%d calories/day** (+0.5kg/week)\n\n"+
		"**Macro Recommendations:**\n"+
		"• Protein: %dg/day\n"+
		"• Carbs: %dg/day\n"+
		"• Fats: %dg/day",
		weight, height, age, gender, activityLevel,
		int(math.Round(tdee)),
		int(math.Round(tdee-500)),
		int(math.Round(tdee+500)),
		int(math.Round(weight*1.8)),
		int(math.Round(tdee*0.4/4)),
		int(math.Round(tdee*0.25/9)))
}

var faqDatabase = map[string]string{
	"push up": "**Push-ups** are a bodyweight exercise that targets chest, shoulders, and triceps.\n\n**How to do it:**\n1. Start in plank position with hands shoulder-width apart\n2. Lower your body until chest nearly touches the floor\n3. Push back up to starting position\n\n**Tips:** Keep core tight, body straight. Aim for 3 sets of 10-15 reps.",

	"pull up": "**Pull-ups** are an upper body exercise that targets back, biceps, and shoulders.\n\n**How to do it:**\n1. Hang from a bar with palms facing away\n2. Pull yourself up until chin is above the bar\n3. Lower back down with control\n\n**Tips:** Start with assisted pull-ups or negatives if needed. Aim for 3 sets of 5-10 reps.",

	"squat": "**Squats** are a compound exercise that targets quads, glutes, and hamstrings.\n\n**How to do it:**\n1. Stand with feet shoulder-width apart\n2. Lower your body as if sitting back into a chair\n3. Go down until thighs are parallel to ground\n4. Push through heels to stand back up\n\n**Tips:** Keep chest up, knees tracking over toes. Aim for 3 sets of 12-15 reps.",

	"plank": "**Planks** are a core strengthening exercise.\n\n**How to do it:**\n1. Get into push-up position on forearms\n2. Keep body straight from head to heels\n3. Hold the position\n\n**Tips:** Don't let hips sag. Start with 30 seconds, work up to 1-2 minutes.",

	"protein": "**Protein** is essential for muscle building and repair.\n\n**Daily needs:** 1.6-2.2g per kg of bodyweight for active individuals\n\n**Best sources:**\n• Animal: Chicken, fish, eggs, beef, dairy\n• Plant: Tofu, tempeh, legumes, quinoa, nuts\n\n**Timing:** Spread intake throughout the day, especially post-workout.",

	"carbohydrate": "**Carbohydrates** are your body's primary energy source.\n\n**Types:**\n• Simple carbs: Quick energy (fruits, honey)\n• Complex carbs: Sustained energy (rice, oats, sweet potato)\n\n**Recommendations:** 3-5g per kg bodyweight for active individuals. Focus on complex carbs.",

	"cardio": "**Cardio** improves heart health and burns calories.\n\n**Types:**\n• Low intensity: Walking, cycling\n• High intensity: Running, HIIT, swimming\n\n**Recommendations:** 150 minutes/week of moderate cardio OR 75 minutes/week of vigorous cardio.",

	"rest day": "**Rest days** are crucial for muscle recovery and growth.\n\n**Why important:**\n• Allows muscle repair\n• Prevents overtraining\n• Reduces injury risk\n\n**Recommendations:** 1-2 rest days per week. Light activity (walking, yoga) is fine.",

	"stretching": "**Stretching** improves flexibility and prevents injury.\n\n**Types:**\n• Dynamic: Before workout (leg swings, arm circles)\n• Static: After workout (hold 20-30 seconds)\n\n**Benefits:** Increased range of motion, reduced muscle tension, better performance.",

	"warm up": "**Warm-up** prepares your body for exercise.\n\n**Duration:** 5-10 minutes\n\n**What to do:**\n• Light cardio (jogging, jumping jacks)\n• Dynamic stretches\n• Movement-specific exercises\n\n**Benefits:** Increased blood flow, reduced injury risk, better performance.",
}

// 固定匹配顺序，保证同一条消息的应答确定
var faqOrder = []string{
	"push up", "pull up", "squat", "plank", "protein",
	"carbohydrate", "cardio", "rest day", "stretching", "warm up",
}

// FAQ 大小写不敏感的子串匹配；未命中返回空串，表示走 AI 路径
func FAQ(message string) string {
	lowerMsg := strings.ToLower(message)
	for _, keyword := range faqOrder {
		if strings.Contains(lowerMsg, keyword) {
			return faqDatabase[keyword]
		}
	}
	return ""
}

// FAQTopics 返回全部 FAQ 关键词
func FAQTopics() []string {
	topics := make([]string, len(faqOrder))
	copy(topics, faqOrder)
	return topics
}
