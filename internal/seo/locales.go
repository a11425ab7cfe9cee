package seo

import (
	"github.com/iconidentify/vidseo/internal/language"
)

// titleTemplate renders a derived title; Format holds a single %s for the original title.
type titleTemplate struct {
	Format string
	Reason string
}

type conceptText struct {
	Concept     string
	TextOverlay string
	FocalPoint  string
	Tone        string
	Composition string
}

// locale holds every language-specific string used by fallbacks and prompts.
type locale struct {
	Tags           [35]string
	OriginalReason string
	// Titles are the guide, how-to, listicle and explainer framings, in rank order.
	Titles [4]titleTemplate
	// Description uses %[1]s for the platform and %[2]s for the title.
	Description  string
	Intro        string
	TagExamples  [3]string
	TitleExample string
	Concepts     [3]conceptText
}

var locales = map[string]*locale{
	language.English: {
		Tags: [35]string{
			"youtube", "video", "tutorial", "vlog", "howto", "review", "explained",
			"educational", "learn", "step by step", "beginner", "advanced", "masterclass",
			"course", "lesson", "strategy", "technique", "demonstration", "walkthrough",
			"overview", "comparison", "versus", "top", "best", "recommended", "trending",
			"viral", "popular", "interesting", "amazing", "helpful", "useful",
			"informative", "detailed", "comprehensive",
		},
		OriginalReason: "Original title",
		Titles: [4]titleTemplate{
			{"Complete Guide to %s", "Informative"},
			{"How to %s", "Step-by-step guide"},
			{"Top 10 %s Tips", "List format"},
			{"%s | Explained", "Educational"},
		},
		Description:  "This %[1]s video about '%[2]s' provides valuable insights. Watch and enjoy!",
		Intro:        "Introduction",
		TagExamples:  [3]string{"#music", "#video", "#tutorial"},
		TitleExample: "How to Make Music Videos Like a Pro",
		Concepts: [3]conceptText{
			{"Professional layout with subject and bold text", "The Ultimate Guide", "Centered subject", "Professional", "Text on left, subject on right"},
			{"Reaction-based thumbnail with close-up emotion", "You Won't Believe This", "Emotion-filled face", "Surprising", "Face close-up, text on top"},
			{"Before/After contrast", "The Big Transformation", "Split screen", "Motivational", "Side-by-side comparison"},
		},
	},
	language.Spanish: {
		Tags: [35]string{
			"youtube", "video", "tutorial", "vlog", "cómo", "reseña", "explicado",
			"educativo", "aprender", "paso a paso", "principiante", "avanzado", "maestría",
			"curso", "lección", "estrategia", "técnica", "demostración", "recorrido",
			"visión general", "comparación", "versus", "top", "mejor", "recomendado",
			"tendencia", "viral", "popular", "interesante", "asombroso", "útil", "práctico",
			"informativo", "detallado", "integral",
		},
		OriginalReason: "Título original",
		Titles: [4]titleTemplate{
			{"Guía completa de %s", "Informativo"},
			{"Cómo %s", "Guía paso a paso"},
			{"Top 10 consejos de %s", "Formato de lista"},
			{"%s | Explicado", "Educativo"},
		},
		Description:  "Este video de %[1]s sobre '%[2]s' ofrece información valiosa. ¡Míralo y disfrútalo!",
		Intro:        "Introducción",
		TagExamples:  [3]string{"#música", "#vídeo", "#tutorial"},
		TitleExample: "Cómo hacer vídeos musicales como un profesional",
		Concepts: [3]conceptText{
			{"Diseño profesional con sujeto y texto llamativo", "La guía definitiva", "Sujeto centrado", "Profesional", "Texto a la izquierda, sujeto a la derecha"},
			{"Miniatura de reacción con emoción en primer plano", "No lo vas a creer", "Rostro lleno de emoción", "Sorprendente", "Primer plano del rostro, texto arriba"},
			{"Contraste de antes y después", "La gran transformación", "Pantalla dividida", "Motivador", "Comparación lado a lado"},
		},
	},
	language.French: {
		Tags: [35]string{
			"youtube", "vidéo", "tutoriel", "vlog", "comment", "critique", "expliqué",
			"éducatif", "apprendre", "étape par étape", "débutant", "avancé", "masterclass",
			"cours", "leçon", "stratégie", "technique", "démonstration", "visite guidée",
			"aperçu", "comparaison", "contre", "top", "meilleur", "recommandé", "tendance",
			"viral", "populaire", "intéressant", "incroyable", "utile", "pratique",
			"informatif", "détaillé", "complet",
		},
		OriginalReason: "Titre original",
		Titles: [4]titleTemplate{
			{"Guide complet de %s", "Informatif"},
			{"Comment %s", "Guide étape par étape"},
			{"Top 10 conseils pour %s", "Format liste"},
			{"%s | Expliqué", "Éducatif"},
		},
		Description:  "Cette vidéo %[1]s sur '%[2]s' offre des informations précieuses. Regardez et profitez-en !",
		Intro:        "Introduction",
		TagExamples:  [3]string{"#musique", "#vidéo", "#tutoriel"},
		TitleExample: "Comment réaliser des clips musicaux comme un pro",
		Concepts: [3]conceptText{
			{"Mise en page professionnelle avec sujet et texte en gras", "Le guide ultime", "Sujet centré", "Professionnel", "Texte à gauche, sujet à droite"},
			{"Miniature de réaction avec émotion en gros plan", "Vous n'allez pas y croire", "Visage plein d'émotion", "Surprenant", "Gros plan du visage, texte en haut"},
			{"Contraste avant/après", "La grande transformation", "Écran partagé", "Motivant", "Comparaison côte à côte"},
		},
	},
	language.German: {
		Tags: [35]string{
			"youtube", "video", "tutorial", "vlog", "wie", "rezension", "erklärt",
			"lehrreich", "lernen", "schritt für schritt", "anfänger", "fortgeschritten",
			"meisterkurs", "kurs", "lektion", "strategie", "technik", "demonstration",
			"führung", "überblick", "vergleich", "gegen", "top", "beste", "empfohlen",
			"trend", "viral", "beliebt", "interessant", "erstaunlich", "hilfreich",
			"nützlich", "informativ", "detailliert", "umfassend",
		},
		OriginalReason: "Originaltitel",
		Titles: [4]titleTemplate{
			{"Komplette Anleitung zu %s", "Informativ"},
			{"Wie man %s", "Schritt-für-Schritt-Anleitung"},
			{"Top 10 Tipps zu %s", "Listenformat"},
			{"%s | Erklärt", "Lehrreich"},
		},
		Description:  "Dieses %[1]s-Video über '%[2]s' bietet wertvolle Einblicke. Ansehen und genießen!",
		Intro:        "Einleitung",
		TagExamples:  [3]string{"#musik", "#video", "#tutorial"},
		TitleExample: "Wie man Musikvideos wie ein Profi macht",
		Concepts: [3]conceptText{
			{"Professionelles Layout mit Motiv und fettem Text", "Der ultimative Leitfaden", "Zentriertes Motiv", "Professionell", "Text links, Motiv rechts"},
			{"Reaktions-Thumbnail mit emotionaler Nahaufnahme", "Das glaubst du nie", "Emotionales Gesicht", "Überraschend", "Gesicht in Nahaufnahme, Text oben"},
			{"Vorher/Nachher-Kontrast", "Die große Verwandlung", "Geteilter Bildschirm", "Motivierend", "Vergleich nebeneinander"},
		},
	},
	language.Italian: {
		Tags: [35]string{
			"youtube", "video", "tutorial", "vlog", "come", "recensione", "spiegato",
			"educativo", "imparare", "passo dopo passo", "principiante", "avanzato",
			"masterclass", "corso", "lezione", "strategia", "tecnica", "dimostrazione",
			"guida", "panoramica", "confronto", "contro", "top", "migliore", "raccomandato",
			"tendenza", "virale", "popolare", "interessante", "incredibile", "utile",
			"pratico", "informativo", "dettagliato", "completo",
		},
		OriginalReason: "Titolo originale",
		Titles: [4]titleTemplate{
			{"Guida completa a %s", "Informativo"},
			{"Come %s", "Guida passo passo"},
			{"Top 10 consigli su %s", "Formato elenco"},
			{"%s | Spiegato", "Educativo"},
		},
		Description:  "Questo video %[1]s su '%[2]s' offre spunti preziosi. Guarda e divertiti!",
		Intro:        "Introduzione",
		TagExamples:  [3]string{"#musica", "#video", "#tutorial"},
		TitleExample: "Come realizzare video musicali come un professionista",
		Concepts: [3]conceptText{
			{"Layout professionale con soggetto e testo in grassetto", "La guida definitiva", "Soggetto centrato", "Professionale", "Testo a sinistra, soggetto a destra"},
			{"Miniatura di reazione con emozione in primo piano", "Non ci crederai mai", "Volto pieno di emozione", "Sorprendente", "Primo piano del volto, testo in alto"},
			{"Contrasto prima/dopo", "La grande trasformazione", "Schermo diviso", "Motivante", "Confronto fianco a fianco"},
		},
	},
	language.Portuguese: {
		Tags: [35]string{
			"youtube", "vídeo", "tutorial", "vlog", "como", "revisão", "explicado",
			"educacional", "aprender", "passo a passo", "iniciante", "avançado",
			"masterclass", "curso", "lição", "estratégia", "técnica", "demonstração",
			"passeio", "visão geral", "comparação", "versus", "top", "melhor", "recomendado",
			"tendência", "viral", "popular", "interessante", "incrível", "útil", "prático",
			"informativo", "detalhado", "abrangente",
		},
		OriginalReason: "Título original",
		Titles: [4]titleTemplate{
			{"Guia completo de %s", "Informativo"},
			{"Como %s", "Guia passo a passo"},
			{"Top 10 dicas de %s", "Formato de lista"},
			{"%s | Explicado", "Educativo"},
		},
		Description:  "Este vídeo do %[1]s sobre '%[2]s' oferece informações valiosas. Assista e aproveite!",
		Intro:        "Introdução",
		TagExamples:  [3]string{"#música", "#vídeo", "#tutorial"},
		TitleExample: "Como fazer vídeos musicais como um profissional",
		Concepts: [3]conceptText{
			{"Layout profissional com pessoa e texto em destaque", "O guia definitivo", "Pessoa centralizada", "Profissional", "Texto à esquerda, pessoa à direita"},
			{"Miniatura de reação com emoção em close", "Você não vai acreditar", "Rosto cheio de emoção", "Surpreendente", "Close do rosto, texto no topo"},
			{"Contraste antes/depois", "A grande transformação", "Tela dividida", "Motivacional", "Comparação lado a lado"},
		},
	},
	language.Japanese: {
		Tags: [35]string{
			"ユーチューブ", "ビデオ", "チュートリアル", "ブログ", "方法", "レビュー", "解説",
			"教育", "学ぶ", "ステップバイステップ", "初心者", "上級者", "マスタークラス",
			"コース", "レッスン", "戦略", "テクニック", "デモンストレーション", "ガイド",
			"概要", "比較", "対", "トップ", "ベスト", "おすすめ", "トレンド", "バイラル",
			"人気", "興味深い", "素晴らしい", "役立つ", "便利", "有益", "詳細", "包括的",
		},
		OriginalReason: "オリジナルタイトル",
		Titles: [4]titleTemplate{
			{"%sの完全ガイド", "情報提供"},
			{"%sの方法", "ステップバイステップガイド"},
			{"%sのトップ10のコツ", "リスト形式"},
			{"%s | 解説", "教育的"},
		},
		Description:  "「%[2]s」についてのこの%[1]s動画は貴重な情報をお届けします。ぜひご覧ください！",
		Intro:        "イントロダクション",
		TagExamples:  [3]string{"#音楽", "#ビデオ", "#チュートリアル"},
		TitleExample: "プロのようにミュージックビデオを作る方法",
		Concepts: [3]conceptText{
			{"被写体と太字テキストのプロフェッショナルなレイアウト", "これが究極ガイド", "中央の被写体", "プロフェッショナル", "左にテキスト、右に被写体"},
			{"感情のクローズアップによるリアクションサムネイル", "信じられない結果", "感情あふれる表情", "驚き", "顔のクローズアップ、上にテキスト"},
			{"ビフォー・アフターの対比", "劇的な大変身", "分割画面", "やる気を引き出す", "左右に並べた比較"},
		},
	},
	language.Korean: {
		Tags: [35]string{
			"유튜브", "비디오", "튜토리얼", "브이로그", "방법", "리뷰", "설명", "교육", "학습",
			"단계별", "초보자", "고급", "마스터클래스", "코스", "레슨", "전략", "기술", "시연",
			"가이드", "개요", "비교", "대", "최고", "베스트", "추천", "트렌드", "바이럴", "인기",
			"흥미로운", "놀라운", "유용한", "실용적인", "정보", "자세한", "포괄적",
		},
		OriginalReason: "원제목",
		Titles: [4]titleTemplate{
			{"%s 완벽 가이드", "정보 제공"},
			{"%s 하는 방법", "단계별 가이드"},
			{"%s의 Top 10 팁", "리스트 형식"},
			{"%s | 설명", "교육적"},
		},
		Description:  "'%[2]s'에 관한 이 %[1]s 동영상은 유용한 정보를 제공합니다. 시청하고 즐기세요!",
		Intro:        "소개",
		TagExamples:  [3]string{"#음악", "#비디오", "#튜토리얼"},
		TitleExample: "프로처럼 뮤직비디오 만드는 방법",
		Concepts: [3]conceptText{
			{"인물과 굵은 텍스트의 전문적인 레이아웃", "이것이 최고의 가이드", "중앙의 인물", "전문적", "왼쪽 텍스트, 오른쪽 인물"},
			{"감정 클로즈업 리액션 썸네일", "믿을 수 없는 결과", "감정이 가득한 얼굴", "놀라움", "얼굴 클로즈업, 상단 텍스트"},
			{"전후 비교 대비", "놀라운 대변신 공개", "분할 화면", "동기 부여", "나란히 비교"},
		},
	},
	language.Chinese: {
		Tags: [35]string{
			"油管", "视频", "教程", "博客", "方法", "评论", "讲解", "教育", "学习", "一步一步",
			"初学者", "高级", "大师班", "课程", "课堂", "策略", "技术", "演示", "导览", "概述",
			"比较", "对比", "热门", "最佳", "推荐", "趋势", "病毒式", "流行", "有趣", "惊人",
			"有用", "实用", "信息", "详细", "全面",
		},
		OriginalReason: "原始标题",
		Titles: [4]titleTemplate{
			{"%s完整指南", "信息丰富"},
			{"如何%s", "分步指南"},
			{"%s的十大技巧", "列表格式"},
			{"%s | 讲解", "教育性"},
		},
		Description:  "这个关于「%[2]s」的%[1]s视频提供了宝贵的见解。欢迎观看！",
		Intro:        "介绍",
		TagExamples:  [3]string{"#音乐", "#视频", "#教程"},
		TitleExample: "如何像专业人士一样制作音乐视频",
		Concepts: [3]conceptText{
			{"带主体和粗体文字的专业布局", "终极完整指南", "居中的主体", "专业", "左侧文字，右侧主体"},
			{"特写情绪的反应式缩略图", "你绝对不会相信", "充满情绪的面孔", "惊讶", "面部特写，文字在上方"},
			{"前后对比", "惊人的大变身", "分屏", "励志", "左右并排对比"},
		},
	},
	language.Russian: {
		Tags: [35]string{
			"ютуб", "видео", "урок", "влог", "как", "обзор", "объяснение", "образование",
			"учиться", "шаг за шагом", "начинающий", "продвинутый", "мастер-класс", "курс",
			"занятие", "стратегия", "техника", "демонстрация", "экскурсия", "краткий обзор",
			"сравнение", "против", "топ", "лучший", "рекомендуемый", "тренд", "вирусный",
			"популярный", "интересный", "удивительный", "полезный", "практичный",
			"информативный", "подробный", "всеобъемлющий",
		},
		OriginalReason: "Оригинальное название",
		Titles: [4]titleTemplate{
			{"Полное руководство по %s", "Информативно"},
			{"Как %s", "Пошаговое руководство"},
			{"Топ 10 советов по %s", "Формат списка"},
			{"%s | Объяснение", "Образовательно"},
		},
		Description:  "Это видео на %[1]s о '%[2]s' содержит ценную информацию. Смотрите и наслаждайтесь!",
		Intro:        "Введение",
		TagExamples:  [3]string{"#музыка", "#видео", "#урок"},
		TitleExample: "Как снимать музыкальные клипы как профессионал",
		Concepts: [3]conceptText{
			{"Профессиональная компоновка с объектом и жирным текстом", "Самое полное руководство", "Объект в центре", "Профессиональный", "Текст слева, объект справа"},
			{"Миниатюра-реакция с эмоцией крупным планом", "Вы не поверите", "Эмоциональное лицо", "Удивительный", "Лицо крупным планом, текст сверху"},
			{"Контраст до и после", "Невероятное преображение", "Разделённый экран", "Мотивирующий", "Сравнение бок о бок"},
		},
	},
	language.Arabic: {
		Tags: [35]string{
			"يوتيوب", "فيديو", "برنامج تعليمي", "مدونة فيديو", "كيفية", "مراجعة", "مشروح",
			"تعليمي", "تعلم", "خطوة بخطوة", "مبتدئ", "متقدم", "دورة متقدمة", "دورة", "درس",
			"استراتيجية", "تقنية", "عرض", "جولة", "نظرة عامة", "مقارنة", "مقابل", "أفضل",
			"موصى به", "اتجاه", "رائج", "فيروسي", "شائع", "مثير للاهتمام", "مذهل", "مفيد",
			"عملي", "معلوماتي", "مفصل", "شامل",
		},
		OriginalReason: "العنوان الأصلي",
		Titles: [4]titleTemplate{
			{"الدليل الكامل لـ %s", "معلوماتي"},
			{"كيفية %s", "دليل خطوة بخطوة"},
			{"أفضل 10 نصائح لـ %s", "تنسيق قائمة"},
			{"%s | شرح", "تعليمي"},
		},
		Description:  "يقدم فيديو %[1]s هذا حول '%[2]s' رؤى قيمة. شاهد واستمتع!",
		Intro:        "مقدمة",
		TagExamples:  [3]string{"#موسيقى", "#فيديو", "#دروس"},
		TitleExample: "كيفية عمل فيديوهات موسيقية مثل المحترفين",
		Concepts: [3]conceptText{
			{"تصميم احترافي مع الشخص ونص عريض", "الدليل الشامل النهائي", "شخص في المنتصف", "احترافي", "النص على اليسار والشخص على اليمين"},
			{"صورة مصغرة تفاعلية مع لقطة قريبة للمشاعر", "لن تصدق ما حدث", "وجه مليء بالمشاعر", "مفاجئ", "لقطة قريبة للوجه والنص في الأعلى"},
			{"تباين قبل وبعد", "التحول الكبير المذهل", "شاشة منقسمة", "تحفيزي", "مقارنة جنبًا إلى جنب"},
		},
	},
	language.Hindi: {
		Tags: [35]string{
			"यूट्यूब", "वीडियो", "ट्यूटोरियल", "व्लॉग", "कैसे करें", "समीक्षा", "व्याख्या",
			"शैक्षिक", "सीखें", "चरण दर चरण", "शुरुआती", "उन्नत", "मास्टरक्लास", "कोर्स",
			"पाठ", "रणनीति", "तकनीक", "प्रदर्शन", "गाइड", "अवलोकन", "तुलना", "बनाम", "टॉप",
			"सर्वश्रेष्ठ", "अनुशंसित", "ट्रेंडिंग", "वायरल", "लोकप्रिय", "दिलचस्प", "अद्भुत",
			"मददगार", "उपयोगी", "जानकारीपूर्ण", "विस्तृत", "संपूर्ण",
		},
		OriginalReason: "मूल शीर्षक",
		Titles: [4]titleTemplate{
			{"%s की पूरी गाइड", "जानकारीपूर्ण"},
			{"%s कैसे करें", "चरण-दर-चरण गाइड"},
			{"%s के टॉप 10 टिप्स", "सूची प्रारूप"},
			{"%s | समझाया गया", "शैक्षिक"},
		},
		Description:  "'%[2]s' के बारे में यह %[1]s वीडियो मूल्यवान जानकारी देता है। देखें और आनंद लें!",
		Intro:        "परिचय",
		TagExamples:  [3]string{"#संगीत", "#वीडियो", "#ट्यूटोरियल"},
		TitleExample: "प्रोफेशनल की तरह म्यूजिक वीडियो कैसे बनाएं",
		Concepts: [3]conceptText{
			{"विषय और बोल्ड टेक्स्ट के साथ पेशेवर लेआउट", "सबसे बेहतरीन गाइड", "केंद्र में विषय", "पेशेवर", "बाईं ओर टेक्स्ट, दाईं ओर विषय"},
			{"क्लोज़-अप भावना वाला रिएक्शन थंबनेल", "यकीन नहीं होगा आपको", "भावनाओं से भरा चेहरा", "चौंकाने वाला", "चेहरे का क्लोज़-अप, ऊपर टेक्स्ट"},
			{"पहले और बाद का अंतर", "जबरदस्त बदलाव देखें", "विभाजित स्क्रीन", "प्रेरक", "साथ-साथ तुलना"},
		},
	},
}

// localeFor returns the table for a canonical language name, defaulting to English.
func localeFor(lang string) *locale {
	if l, ok := locales[lang]; ok {
		return l
	}
	return locales[language.English]
}
