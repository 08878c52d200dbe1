// Package samples holds sample sentences in Indian languages for trying the
// UTF-8 encoder.
package samples

import "github.com/sahilm/fuzzy"

// Sample is a named sentence.
type Sample struct {
	Key  string
	Name string
	Text string
}

// All lists the samples in menu order.
var All = []Sample{
	{"hindi", "Hindi (हिन्दी)", "नमस्ते, आप कैसे हैं? यह एक नमूना वाक्य है।"},
	{"bengali", "Bengali (বাংলা)", "নমস্কার, আপনি কেমন আছেন? এটি একটি নমুনা বাক্য।"},
	{"tamil", "Tamil (தமிழ்)", "வணக்கம், நீங்கள் எப்படி இருக்கிறீர்கள்? இது ஒரு மாதிரி வாக்கியம்."},
	{"telugu", "Telugu (తెలుగు)", "నమస్కారం, మీరు ఎలా ఉన్నారు? ఇది ఒక నమూనా వాక్యం."},
	{"marathi", "Marathi (मराठी)", "नमस्कार, तुम्ही कसे आहात? हे एक नमुना वाक्य आहे."},
	{"gujarati", "Gujarati (ગુજરાતી)", "નમસ્તે, તમે કેમ છો? આ એક નમૂના વાક્ય છે."},
	{"kannada", "Kannada (ಕನ್ನಡ)", "ನಮಸ್ಕಾರ, ನೀವು ಹೇಗಿದ್ದೀರಿ? ಇದು ಒಂದು ಮಾದರಿ ವಾಕ್ಯ."},
	{"malayalam", "Malayalam (മലയാളം)", "നമസ്കാരം, സുഖമാണോ? ഇതൊരു മാതൃകാ വാക്യമാണ്."},
	{"punjabi", "Punjabi (ਪੰਜਾਬੀ)", "ਸਤ ਸ੍ਰੀ ਅਕਾਲ, ਤੁਸੀਂ ਕਿਵੇਂ ਹੋ? ਇਹ ਇੱਕ ਨਮੂਨਾ ਵਾਕ ਹੈ।"},
	{"odia", "Odia (ଓଡ଼ିଆ)", "ନମସ୍କାର, ଆପଣ କେମିତି ଅଛନ୍ତି? ଏହା ଏକ ନମୁନା ବାକ୍ୟ।"},
	{"urdu", "Urdu (اردو)", "السلام علیکم، آپ کیسے ہیں؟ یہ ایک نمونہ جملہ ہے۔"},
	{"sanskrit", "Sanskrit (संस्कृतम्)", "नमो नमः, भवान् कथम् अस्ति? एतत् एकं उदाहरणवाक्यम् अस्ति।"},
}

type names []Sample

func (n names) String(i int) string { return n[i].Key + " " + n[i].Name }
func (n names) Len() int            { return len(n) }

// Find returns samples whose key or name fuzzily matches query, best match
// first. An empty query returns All.
func Find(query string) []Sample {
	if query == "" {
		return All
	}
	matches := fuzzy.FindFrom(query, names(All))
	out := make([]Sample, 0, len(matches))
	for _, m := range matches {
		out = append(out, All[m.Index])
	}
	return out
}

// Get returns the sample with the given key.
func Get(key string) (Sample, bool) {
	for _, s := range All {
		if s.Key == key {
			return s, true
		}
	}
	return Sample{}, false
}
