package logger

import (
	"github.com/sirupsen/logrus"
)

// Log é o logger global. Nasce com os padrões do logrus para que
// pacotes possam logar antes de Init.
var Log = logrus.New()

// Init inicializa o logger estruturado.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Log.SetLevel(lvl)

	// JSON para production, texto para development
	Log.SetFormatter(&logrus.JSONFormatter{})
}

// SetTextFormatter ativa o formato de texto (development).
func SetTextFormatter() {
	if Log != nil {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}
}
