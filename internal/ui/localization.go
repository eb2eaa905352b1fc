package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyTabHome            = "tab_home"
	KeyTabTranslator      = "tab_translator"
	KeyTabExports         = "tab_exports"
	KeyTabAbout           = "tab_about"
	KeySettings           = "settings"
	KeyFile               = "file"
	KeyLanguage           = "language"
	KeyOutputDirectory    = "output_directory"
	KeyTempDirectory      = "temp_directory"
	KeyMaxParallel        = "max_parallel"
	KeyTranscriber        = "transcriber"
	KeyWhisperModel       = "whisper_model"
	KeyExportSource       = "export_source"
	KeyDefaultTarget      = "default_target"
	KeyAutoOpen           = "auto_open"
	KeySave               = "save"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeyEnterURL           = "enter_url"
	KeyVideoName          = "video_name"
	KeyTargetLanguage     = "target_language"
	KeyTranslate          = "translate"
	KeyStop               = "stop"
	KeyRemove             = "remove"
	KeyOpen               = "open"
	KeyReveal             = "reveal"
	KeyCopyPath           = "copy_path"
	KeyPathCopied         = "path_copied"
	KeySettingsSaved      = "settings_saved"
	KeyRestartRequired    = "restart_required"
	KeyTranslationStarted = "translation_started"
	KeyTranslationQueued  = "translation_queued"
	KeyTranslationDone    = "translation_done"
	KeyTranslationFailed  = "translation_failed"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyInvalidURL         = "invalid_url"
	KeyPleaseEnterURL     = "please_enter_url"
	KeyAlreadyInQueue     = "already_in_queue"
	KeyJobs               = "jobs"
	KeyNoJobs             = "no_jobs"
	KeyRecentOutputs      = "recent_outputs"
	KeyNoOutputs          = "no_outputs"
	KeyRefresh            = "refresh"
	KeyYear               = "year"
	KeyChart              = "chart"
	KeyDataset            = "dataset"
	KeySaveCSV            = "save_csv"
	KeySaveJSON           = "save_json"
	KeyExportSaved        = "export_saved"
	KeyTotalExports       = "total_exports"
	KeyTopProduct         = "top_product"
	KeyTopPartner         = "top_partner"
	KeyTradeBalance       = "trade_balance"
	KeyDataSource         = "data_source"
	KeyLoadingData        = "loading_data"
	KeyDataError          = "data_error"
	KeyHomeIntro          = "home_intro"
	KeyHomeTranslator     = "home_translator"
	KeyHomeExports        = "home_exports"
	KeyAboutText          = "about_text"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" and unknown codes fall back to English.
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
		return
	}
	l.currentLanguage = "en"
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"es": "Español",
	}
}

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "YTDash",
		KeyTabHome:            "Home",
		KeyTabTranslator:      "YouTube Translator",
		KeyTabExports:         "Uruguay Export Data",
		KeyTabAbout:           "About",
		KeySettings:           "Settings",
		KeyFile:               "File",
		KeyLanguage:           "Language",
		KeyOutputDirectory:    "Output Directory",
		KeyTempDirectory:      "Temp Directory",
		KeyMaxParallel:        "Max Parallel Translations",
		KeyTranscriber:        "Speech Recognition",
		KeyWhisperModel:       "Whisper Model",
		KeyExportSource:       "Export Data Source",
		KeyDefaultTarget:      "Default Target Language",
		KeyAutoOpen:           "Open videos when ready",
		KeySave:               "Save",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeyEnterURL:           "YouTube URL (https://youtube.com/watch?v=...)",
		KeyVideoName:          "Custom video name (optional)",
		KeyTargetLanguage:     "Target Language",
		KeyTranslate:          "Translate Video",
		KeyStop:               "Stop",
		KeyRemove:             "Remove",
		KeyOpen:               "Play",
		KeyReveal:             "Reveal",
		KeyCopyPath:           "Path",
		KeyPathCopied:         "Path copied to clipboard",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyRestartRequired:    "Backend changes apply after restart.",
		KeyTranslationStarted: "Translation started",
		KeyTranslationQueued:  "Translation queued",
		KeyTranslationDone:    "Translation complete",
		KeyTranslationFailed:  "Translation failed",
		KeyErrorOpeningFile:   "Error opening file",
		KeyInvalidURL:         "Invalid YouTube URL",
		KeyPleaseEnterURL:     "Please enter a YouTube URL",
		KeyAlreadyInQueue:     "This video is already being translated to that language",
		KeyJobs:               "Translations",
		KeyNoJobs:             "No translations yet",
		KeyRecentOutputs:      "Recent Videos",
		KeyNoOutputs:          "No translated videos yet",
		KeyRefresh:            "Refresh",
		KeyYear:               "Year",
		KeyChart:              "Chart",
		KeyDataset:            "Dataset",
		KeySaveCSV:            "Save CSV",
		KeySaveJSON:           "Save JSON",
		KeyExportSaved:        "Export saved",
		KeyTotalExports:       "Total Exports",
		KeyTopProduct:         "Top Product",
		KeyTopPartner:         "Top Partner",
		KeyTradeBalance:       "Trade Balance",
		KeyDataSource:         "Data source",
		KeyLoadingData:        "Loading export data...",
		KeyDataError:          "Could not load export data",
		KeyHomeIntro:          "Two tools in one dashboard.",
		KeyHomeTranslator:     "YouTube Translator: download a video, transcribe its speech, translate it and dub it in another language.",
		KeyHomeExports:        "Uruguay Export Data: explore export products, trade partners, category trends and product complexity.",
		KeyAboutText:          "YTDash combines a YouTube speech translator with a Uruguay export data dashboard. Speech is recognised with Whisper or Amazon Transcribe, translated and synthesised with Google services, and merged back into the video with FFmpeg.",
	}

	l.texts["es"] = map[string]string{
		KeyAppTitle:           "YTDash",
		KeyTabHome:            "Inicio",
		KeyTabTranslator:      "Traductor de YouTube",
		KeyTabExports:         "Exportaciones de Uruguay",
		KeyTabAbout:           "Acerca de",
		KeySettings:           "Configuración",
		KeyFile:               "Archivo",
		KeyLanguage:           "Idioma",
		KeyOutputDirectory:    "Carpeta de salida",
		KeyTempDirectory:      "Carpeta temporal",
		KeyMaxParallel:        "Traducciones en paralelo",
		KeyTranscriber:        "Reconocimiento de voz",
		KeyWhisperModel:       "Modelo Whisper",
		KeyExportSource:       "Fuente de datos",
		KeyDefaultTarget:      "Idioma de destino predeterminado",
		KeyAutoOpen:           "Abrir videos al terminar",
		KeySave:               "Guardar",
		KeyCancel:             "Cancelar",
		KeyBrowse:             "Examinar",
		KeyEnterURL:           "URL de YouTube (https://youtube.com/watch?v=...)",
		KeyVideoName:          "Nombre del video (opcional)",
		KeyTargetLanguage:     "Idioma de destino",
		KeyTranslate:          "Traducir video",
		KeyStop:               "Detener",
		KeyRemove:             "Quitar",
		KeyOpen:               "Reproducir",
		KeyReveal:             "Mostrar",
		KeyCopyPath:           "Ruta",
		KeyPathCopied:         "Ruta copiada al portapapeles",
		KeySettingsSaved:      "¡Configuración guardada!",
		KeyRestartRequired:    "Los cambios de servicios se aplican al reiniciar.",
		KeyTranslationStarted: "Traducción iniciada",
		KeyTranslationQueued:  "Traducción en cola",
		KeyTranslationDone:    "Traducción completa",
		KeyTranslationFailed:  "La traducción falló",
		KeyErrorOpeningFile:   "Error al abrir el archivo",
		KeyInvalidURL:         "URL de YouTube inválida",
		KeyPleaseEnterURL:     "Ingrese una URL de YouTube",
		KeyAlreadyInQueue:     "Este video ya se está traduciendo a ese idioma",
		KeyJobs:               "Traducciones",
		KeyNoJobs:             "Aún no hay traducciones",
		KeyRecentOutputs:      "Videos recientes",
		KeyNoOutputs:          "Aún no hay videos traducidos",
		KeyRefresh:            "Actualizar",
		KeyYear:               "Año",
		KeyChart:              "Gráfico",
		KeyDataset:            "Conjunto de datos",
		KeySaveCSV:            "Guardar CSV",
		KeySaveJSON:           "Guardar JSON",
		KeyExportSaved:        "Exportación guardada",
		KeyTotalExports:       "Exportaciones totales",
		KeyTopProduct:         "Producto principal",
		KeyTopPartner:         "Socio principal",
		KeyTradeBalance:       "Balanza comercial",
		KeyDataSource:         "Fuente",
		KeyLoadingData:        "Cargando datos de exportación...",
		KeyDataError:          "No se pudieron cargar los datos",
		KeyHomeIntro:          "Dos herramientas en un solo panel.",
		KeyHomeTranslator:     "Traductor de YouTube: descarga un video, transcribe el audio, lo traduce y lo dobla a otro idioma.",
		KeyHomeExports:        "Exportaciones de Uruguay: productos, socios comerciales, tendencias y complejidad.",
		KeyAboutText:          "YTDash combina un traductor de voz para YouTube con un panel de exportaciones de Uruguay. La voz se reconoce con Whisper o Amazon Transcribe, se traduce y sintetiza con servicios de Google y se vuelve a unir al video con FFmpeg.",
	}
}
