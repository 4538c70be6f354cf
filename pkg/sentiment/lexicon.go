package sentiment

// hinglishWords overrides and extends the VADER word list with Roman Hindi
// and chat slang. Keys are lower case; text is lower-cased before lookup.
var hinglishWords = map[string]float64{
	// Strong positive
	"awesome": 3.5, "amazing": 3.5, "zabardast": 3.5, "shandaar": 3.5,
	"kamaal": 3.2, "lajawaab": 3.5, "mast": 3.0, "badiya": 3.0, "badhiya": 3.0,
	"shandar": 3.5, "jabardast": 3.5, "faadu": 3.0, "jhakaas": 3.2,
	"superb": 3.5, "fantastic": 3.5, "excellent": 3.5, "brilliant": 3.5,
	"wonderful": 3.5, "terrific": 3.2, "wahh": 3.0, "waah": 3.0, "wah": 2.8,
	"lovely": 3.0, "beautiful": 3.0, "perfect": 3.5,

	// Moderate positive
	"accha": 2.0, "acha": 2.0, "achha": 2.0, "theek": 1.5, "thik": 1.5,
	"sahi": 2.2, "shi": 2.0, "mazaa": 2.5, "maza": 2.5, "maja": 2.5,
	"khush": 2.5, "khushi": 2.5, "pyaar": 2.5, "pyar": 2.5, "dil": 1.8,
	"hasna": 2.0, "hasi": 2.0, "enjoy": 2.0, "party": 1.5, "celebration": 2.0,
	"shaadi": 2.0, "dost": 1.8, "yaar": 1.5, "bhai": 1.5, "bro": 1.5,
	"dude": 1.3, "behen": 1.5, "jeet": 2.5, "jiyo": 2.5, "zindabad": 2.5,
	"barobar": 2.0, "sundar": 2.5, "sexy": 2.0, "cute": 2.5, "sweet": 2.2,
	"smart": 2.0, "talented": 2.5, "proud": 2.0, "congrats": 2.5,
	"congratulations": 2.8, "badhai": 2.5, "shubh": 2.0, "mangal": 2.0,
	"dhanyavaad": 2.0, "dhanyawad": 2.0, "shukriya": 2.0, "thanks": 1.8,
	"thankyou": 2.0, "thanku": 1.8, "thnx": 1.5, "thx": 1.5, "ty": 1.5,

	// Mild positive
	"haan": 1.0, "han": 1.0, "haa": 0.8, "ji": 1.0, "jee": 1.0, "bilkul": 1.5,
	"zaroor": 1.2, "pakka": 1.5, "confirm": 1.2, "done": 1.0, "ok": 0.5,
	"okay": 0.5, "k": 0.3, "kk": 0.5, "hmm": 0.3, "hmmm": 0.3,
	"interesting": 1.2, "nice": 1.8, "noice": 2.0, "naice": 2.0, "cool": 1.8,
	"kool": 1.8, "chill": 1.5,

	// Mild negative
	"nahi": -0.8, "nai": -0.8, "na": -0.5, "mat": -0.8, "ruk": -0.5,
	"wait": -0.3, "baad": -0.3, "kal": 0.0, "boring": -1.5, "bore": -1.2,
	"thaka": -1.0, "tired": -1.0, "busy": -0.8, "late": -0.8, "problem": -1.2,
	"issue": -1.0, "confuse": -1.0, "confused": -1.2, "tension": -1.5,
	"stress": -1.5,

	// Moderate negative
	"bura": -2.0, "ganda": -2.2, "kharab": -2.0, "bekar": -2.2, "bekaar": -2.2,
	"faltu": -2.2, "nakli": -1.8, "jhooth": -2.0, "jhoot": -2.0, "galat": -2.0,
	"galt": -1.8, "mushkil": -1.5, "dukh": -2.0, "dard": -2.0, "takleef": -2.0,
	"pareshan": -2.0, "gussa": -2.2, "angry": -2.2, "irritate": -2.0,
	"irritated": -2.2, "annoyed": -2.0, "annoying": -2.2, "sad": -2.0,
	"upset": -2.2, "disappointed": -2.5, "disappoint": -2.2, "hurt": -2.2,
	"rude": -2.0, "mean": -1.8, "wrong": -1.8, "bad": -2.0, "worst": -3.0,
	"worse": -2.5, "hate": -3.0, "dislike": -2.0, "sorry": -0.8, "maafi": -0.8,

	// Strong negative
	"bakwas": -3.0, "bakwaas": -3.0, "ghatiya": -3.0, "wahiyat": -3.2,
	"wahiyaat": -3.2, "bhadda": -2.8, "stupid": -2.8, "idiot": -3.0,
	"fool": -2.5, "pagal": -2.5, "paagal": -2.5, "bewakoof": -3.0,
	"gadha": -2.8, "ullu": -2.5, "chutiya": -3.8, "mc": -3.5, "bc": -3.5,
	"bsdk": -3.5, "saala": -2.5, "kameena": -3.2, "harami": -3.2, "gandu": -3.5,
	"madarchod": -4.0, "bhenchod": -4.0, "terrible": -3.2, "horrible": -3.2,
	"awful": -3.0, "disgusting": -3.5, "pathetic": -3.0, "useless": -2.5,
	"trash": -3.0, "garbage": -3.0, "crap": -2.5, "shit": -3.0, "damn": -2.0,
	"hell": -2.0, "fuck": -3.5, "wtf": -2.8, "ffs": -2.5,

	// Reactions
	"lol": 2.0, "lmao": 2.5, "lmfao": 2.8, "rofl": 2.5, "haha": 2.0,
	"hahaha": 2.5, "hahahaha": 2.8, "hehe": 1.8, "hehehe": 2.0, "hihi": 1.5,
	"xd": 2.0, "omg": 1.5, "wow": 2.5, "yay": 2.8, "yaay": 3.0, "yaaay": 3.2,
	"hurray": 3.0, "hooray": 3.0, "woot": 2.5, "woohoo": 3.0, "uff": -1.0,
	"uhh": -0.5, "ugh": -1.8, "eww": -2.5, "meh": -0.8, "bleh": -1.0,
	"argh": -2.0, "grr": -2.0, "hmph": -1.2, "oops": -1.0, "ouch": -1.5,
	"aww": 2.0, "awww": 2.5, "awwww": 2.8,

	// Emoticons
	":)": 2.0, ":-)": 2.0, ":(": -2.0, ":-(": -2.0, ":d": 2.5, ":-d": 2.5,
	";)": 1.8, ";-)": 1.8, ":p": 1.5, ":-p": 1.5, ":/": -1.0, ":-/": -1.0,
	":|": -0.5, ":-|": -0.5, "<3": 3.0, "</3": -2.5,

	// Intensifiers
	"bahut": 1.5, "bohot": 1.5, "bhot": 1.3, "boht": 1.3, "bht": 1.0,
	"kafi": 1.2, "zyada": 1.0, "ekdum": 1.5, "puri": 1.2, "poora": 1.2,
	"sabse": 1.3, "asli": 1.2, "sacchi": 1.5, "sach": 1.2, "really": 1.3,
	"very": 1.2, "super": 1.5, "ultra": 1.5, "mega": 1.5, "totally": 1.3,
	"absolutely": 1.5, "completely": 1.3, "extremely": 1.5,

	// Chat filler
	"bol": 0.5, "bolo": 0.5, "batao": 0.5, "bta": 0.3, "kya": 0.0, "kaise": 0.0,
	"kaisa": 0.0, "kahan": 0.0, "kab": 0.0, "kyun": -0.3, "kyu": -0.3,
	"achanak": -0.5, "jaldi": 0.0, "abhi": 0.0, "baaki": 0.0, "phir": 0.0,
	"fir": 0.0, "aur": 0.0, "bhi": 0.0, "sirf": 0.0, "bas": 0.0, "khatam": -0.5,
	"chalo": 0.5, "chal": 0.3, "aa": 0.3, "aaja": 0.5, "milte": 0.8,
	"milenge": 0.8, "miss": 1.5, "yaad": 1.2,
}
