package astro

import "math/rand"

// horoscopeTemplates holds the daily reading texts, a few per sign.
var horoscopeTemplates = map[Sign][]string{
	Aries: {
		"Today brings new opportunities for leadership. Your bold energy attracts success.",
		"Channel your natural courage into creative projects. Others will follow your lead.",
		"A challenge today becomes tomorrow's triumph. Trust your instincts and take action.",
	},
	Taurus: {
		"Stability and patience bring rewards today. Focus on building lasting foundations.",
		"Your practical nature guides you to wise decisions. Trust the process.",
		"Material and emotional security align favorably. Enjoy the simple pleasures.",
	},
	Gemini: {
		"Communication flows effortlessly today. Share your ideas with confidence.",
		"Your curiosity opens new doors. Embrace learning and social connections.",
		"Versatility is your strength. Adapt to changes with your characteristic grace.",
	},
	Cancer: {
		"Emotional intuition guides you true today. Trust your inner voice.",
		"Nurturing relationships brings deep satisfaction. Home and family shine.",
		"Your caring nature creates positive ripples. Others appreciate your support.",
	},
	Leo: {
		"Your natural charisma draws admiration today. Shine brightly and inspire others.",
		"Creative expression brings joy and recognition. Share your talents generously.",
		"Leadership opportunities arise. Step forward with confidence and warmth.",
	},
	Virgo: {
		"Attention to detail brings success today. Your analytical skills are valued.",
		"Practical solutions emerge from careful planning. Organization pays off.",
		"Your helpful nature makes a real difference. Service brings satisfaction.",
	},
	Libra: {
		"Balance and harmony characterize your day. Relationships flourish.",
		"Your diplomatic skills resolve conflicts gracefully. Beauty surrounds you.",
		"Partnership brings mutual benefits. Cooperation leads to success.",
	},
	Scorpio: {
		"Deep insights emerge today. Your intensity reveals hidden truths.",
		"Transformation is in the air. Embrace positive change with courage.",
		"Your passion and determination overcome obstacles. Trust your power.",
	},
	Sagittarius: {
		"Adventure calls and you answer enthusiastically. Expand your horizons.",
		"Optimism and wisdom guide your path. Learning brings excitement.",
		"Freedom and exploration energize you. Follow your philosophical nature.",
	},
	Capricorn: {
		"Disciplined effort brings tangible results. Your ambition is rewarded.",
		"Long-term goals come into focus. Patience and persistence pay off.",
		"Your practical wisdom guides others. Leadership through example.",
	},
	Aquarius: {
		"Innovation and originality set you apart. Your ideas inspire change.",
		"Social connections bring unexpected opportunities. Community matters.",
		"Your independent spirit finds creative solutions. Think outside the box.",
	},
	Pisces: {
		"Intuition and compassion guide you today. Trust your spiritual nature.",
		"Creative imagination flows freely. Artistic expression brings fulfillment.",
		"Your empathy creates deep connections. Dreams hold important messages.",
	},
}

// lifePathMeanings describes each life path number, master numbers included.
var lifePathMeanings = map[int]string{
	1:  "The Leader - Independent, ambitious, and pioneering. You're born to lead and innovate.",
	2:  "The Peacemaker - Diplomatic, cooperative, and intuitive. You excel at bringing harmony.",
	3:  "The Creative - Expressive, optimistic, and artistic. You inspire joy and creativity.",
	4:  "The Builder - Practical, stable, and hardworking. You create lasting foundations.",
	5:  "The Explorer - Adventurous, freedom-loving, and versatile. Change is your constant.",
	6:  "The Nurturer - Responsible, caring, and family-oriented. You heal and protect others.",
	7:  "The Seeker - Analytical, spiritual, and introspective. You seek deeper truths.",
	8:  "The Powerhouse - Ambitious, authoritative, and materially successful. You manifest abundance.",
	9:  "The Humanitarian - Compassionate, idealistic, and selfless. You serve the greater good.",
	11: "The Illuminator (Master Number) - Highly intuitive, inspiring, and spiritually aware. You bring enlightenment.",
	22: "The Master Builder (Master Number) - Visionary, practical genius, and manifesting great things. You build dreams into reality.",
	33: "The Master Teacher (Master Number) - Compassionate guide, healer, and uplifter. You teach through love and example.",
}

// Horoscope returns a randomly selected daily reading for a sign.
func Horoscope(sign Sign) string {
	templates, ok := horoscopeTemplates[sign]
	if !ok || len(templates) == 0 {
		return "The stars are aligned in your favor today."
	}
	return templates[rand.Intn(len(templates))]
}

// HoroscopeTemplates returns all reading templates for a sign.
func HoroscopeTemplates(sign Sign) []string {
	return horoscopeTemplates[sign]
}

// LifePathMeaning returns the textual meaning of a life path number.
func LifePathMeaning(lifePath int) string {
	if meaning, ok := lifePathMeanings[lifePath]; ok {
		return meaning
	}
	return "Your path is unique and special, combining multiple influences."
}
