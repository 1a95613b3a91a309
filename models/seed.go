package models

import (
	"log"

	"gorm.io/gorm"
)

func uintPtr(v uint) *uint { return &v }

// DefaultRanks: ids are seeded in ascending min_experience order so rank ids
// stay comparable for mission eligibility.
var DefaultRanks = []Rank{
	{Name: "Новичок", MinExperience: 0, RequiredMissions: []uint{}, RequiredCompetences: []uint{}},
	{Name: "Исследователь", MinExperience: 100, RequiredMissions: []uint{1, 2}, RequiredCompetences: []uint{1}},
	{Name: "Мастер", MinExperience: 500, RequiredMissions: []uint{1, 2, 3, 4, 5}, RequiredCompetences: []uint{1, 2}},
	{Name: "Легенда", MinExperience: 1000, RequiredMissions: []uint{1, 2, 3, 4, 5, 6, 7, 8}, RequiredCompetences: []uint{1, 2, 3, 4}},
}

var DefaultCompetences = []Competence{
	{Name: "Программирование", Description: "Навыки разработки программного обеспечения", MaxLevel: 10},
	{Name: "Дизайн", Description: "Создание пользовательских интерфейсов", MaxLevel: 10},
	{Name: "Аналитика", Description: "Анализ данных и принятие решений", MaxLevel: 10},
	{Name: "Коммуникация", Description: "Навыки общения и работы в команде", MaxLevel: 10},
}

var DefaultArtifacts = []Artifact{
	{Name: "Амулет тестирования", Description: "Помогает находить ошибки в коде", Image: "/images/artifacts/test-amulet.png", Rarity: RarityCommon},
	{Name: "Кольцо компиляции", Description: "Ускоряет процесс разработки", Image: "/images/artifacts/compile-ring.png", Rarity: RarityRare},
	{Name: "Щит отладки", Description: "Защищает от багов и ошибок", Image: "/images/artifacts/debug-shield.png", Rarity: RarityEpic},
	{Name: "Код-меч", Description: "Легендарный меч из чистого кода", Image: "/images/artifacts/code-sword.png", Rarity: RarityLegendary},
}

var DefaultMissions = []Mission{
	{
		Title:             "Первые шаги",
		Description:       "Создайте свой первый проект и изучите основы разработки",
		ExperienceReward:  50,
		ManaReward:        25,
		RequiredRankID:    1,
		Category:          "Обучение",
		Branch:            "Основы",
		CompetenceRewards: []uint{1},
		ArtifactID:        uintPtr(1),
		Requirements:      []string{"Базовые знания программирования"},
		Steps:             []string{"Создайте новый проект", "Напишите первую программу", "Запустите и протестируйте"},
		Status:            MissionStatusPublished,
	},
	{
		Title:             "React Мастер",
		Description:       "Изучите React и создайте компонент",
		ExperienceReward:  100,
		ManaReward:        50,
		RequiredRankID:    2,
		Category:          "Frontend",
		Branch:            "React",
		CompetenceRewards: []uint{1, 2},
		ArtifactID:        uintPtr(2),
		Requirements:      []string{"Знание JavaScript", "Основы HTML/CSS"},
		Steps:             []string{"Установите React", "Создайте компонент", "Добавьте стили"},
		Status:            MissionStatusPublished,
	},
	{
		Title:             "Backend API",
		Description:       "Создайте REST API",
		ExperienceReward:  150,
		ManaReward:        75,
		RequiredRankID:    2,
		Category:          "Backend",
		Branch:            "Go",
		CompetenceRewards: []uint{1, 3},
		ArtifactID:        uintPtr(3),
		Requirements:      []string{"Знание Go", "Основы HTTP"},
		Steps:             []string{"Создайте обработчики", "Настройте маршруты", "Добавьте валидацию"},
		Status:            MissionStatusPublished,
	},
	{
		Title:             "База данных",
		Description:       "Спроектируйте и создайте базу данных",
		ExperienceReward:  120,
		ManaReward:        60,
		RequiredRankID:    2,
		Category:          "Database",
		Branch:            "SQL",
		CompetenceRewards: []uint{3},
		Requirements:      []string{"Основы SQL"},
		Steps:             []string{"Спроектируйте схему", "Создайте таблицы", "Добавьте индексы"},
		Status:            MissionStatusPublished,
	},
	{
		Title:             "Деплой",
		Description:       "Разверните приложение на сервере",
		ExperienceReward:  200,
		ManaReward:        100,
		RequiredRankID:    3,
		Category:          "DevOps",
		Branch:            "Deployment",
		CompetenceRewards: []uint{1, 4},
		ArtifactID:        uintPtr(4),
		Requirements:      []string{"Знание Docker", "Основы Linux"},
		Steps:             []string{"Настройте Docker", "Создайте docker-compose", "Разверните на сервере"},
		Status:            MissionStatusPublished,
	},
}

var DefaultStoreItems = []StoreItem{
	{Name: "Усилитель опыта", Description: "Увеличивает получаемый опыт на 50% на 1 час", Price: 100, Category: "booster", Image: "exp_booster.png"},
	{Name: "Усилитель маны", Description: "Увеличивает получаемую ману на 50% на 1 час", Price: 80, Category: "booster", Image: "mana_booster.png"},
	{Name: "Золотая тема", Description: "Эксклюзивная золотая тема для интерфейса", Price: 200, Category: "theme", Image: "gold_theme.png"},
	{Name: "Космическая тема", Description: "Тема в космическом стиле с анимациями", Price: 150, Category: "theme", Image: "space_theme.png"},
	{Name: "Пропуск миссии", Description: "Позволяет пропустить любую миссию", Price: 300, Category: "utility", Image: "mission_skip.png"},
}

var DefaultThemes = []Theme{
	{
		Name:           "space",
		DisplayName:    "Космическая Одиссея",
		Description:    "Исследуйте бесконечные просторы вселенной",
		Category:       "space",
		IsActive:       true,
		IsDefault:      true,
		UserCategories: []string{"all"},
		Colors: map[string]string{
			"primary": "#4ecdc4", "secondary": "#667eea", "accent": "#ffd700",
			"background": "#0a0a0a", "surface": "#1a1a1a", "text": "#ffffff",
		},
		Gradients: map[string]string{
			"main":   "linear-gradient(135deg, #4ecdc4 0%, #667eea 100%)",
			"button": "linear-gradient(45deg, #4ecdc4, #667eea)",
		},
		Effects: map[string]string{"glow": "0 0 20px rgba(78, 205, 196, 0.3)"},
		Icons:   map[string]string{"primary": "🚀", "secondary": "⭐", "accent": "🌟"},
	},
	{
		Name:           "fantasy",
		DisplayName:    "Фэнтези Мир",
		Description:    "Магический мир полный приключений",
		Category:       "fantasy",
		IsDefault:      true,
		UserCategories: []string{"all"},
		Colors: map[string]string{
			"primary": "#8b4513", "secondary": "#228b22", "accent": "#ffd700",
			"background": "#2d1810", "surface": "#3d2810", "text": "#f4e4bc",
		},
		Gradients: map[string]string{
			"main":   "linear-gradient(135deg, #8b4513 0%, #228b22 100%)",
			"button": "linear-gradient(45deg, #8b4513, #228b22)",
		},
		Effects: map[string]string{"glow": "0 0 20px rgba(255, 215, 0, 0.3)"},
		Icons:   map[string]string{"primary": "⚔️", "secondary": "🛡️", "accent": "🏰"},
	},
}

// SeedDefaults inserts reference data into an empty database. Safe to call on
// every boot: each table is only seeded when it has no rows.
func SeedDefaults(db *gorm.DB) error {
	seed := func(model any, rows any, label string) error {
		var count int64
		if err := db.Model(model).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := db.Create(rows).Error; err != nil {
			return err
		}
		log.Printf("🌱 Seeded default %s", label)
		return nil
	}

	if err := seed(&Rank{}, &DefaultRanks, "ranks"); err != nil {
		return err
	}
	if err := seed(&Competence{}, &DefaultCompetences, "competences"); err != nil {
		return err
	}
	if err := seed(&Artifact{}, &DefaultArtifacts, "artifacts"); err != nil {
		return err
	}
	if err := seed(&Mission{}, &DefaultMissions, "missions"); err != nil {
		return err
	}
	if err := seed(&StoreItem{}, &DefaultStoreItems, "store items"); err != nil {
		return err
	}
	return seed(&Theme{}, &DefaultThemes, "themes")
}
