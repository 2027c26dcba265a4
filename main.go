package main

import (
	"log"
	"os"
	"time"

	"github.com/gbl08ma/keybox"
	"github.com/gbl08ma/sqalx"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	cache "github.com/patrickmn/go-cache"

	"github.com/trucklog/hosd/compliance"
	"github.com/trucklog/hosd/dataobjects"
	"github.com/trucklog/hosd/workflow"
)

var (
	rdb           *sqlx.DB
	rootSqalxNode sqalx.Node
	secrets       *keybox.Keybox
	mainLog       = log.New(os.Stdout, "", log.Ldate|log.Ltime)

	engine     *compliance.Engine
	violationW *workflow.Workflow

	// statusCache holds the latest HOSStatus per driver ID
	statusCache *cache.Cache

	// GitCommit is provided by govvv at compile-time
	GitCommit = "???"
	// BuildDate is provided by govvv at compile-time
	BuildDate = "???"
)

func main() {
	var err error
	mainLog.Println("Server starting, opening keybox...")
	secrets, err = keybox.Open(SecretsPath)
	if err != nil {
		mainLog.Fatalln(err)
	}
	mainLog.Println("Keybox opened")

	mainLog.Println("Opening database...")
	databaseURI, present := secrets.Get("databaseURI")
	if !present {
		mainLog.Fatalln("Database connection string not present in keybox")
	}
	rdb, err = sqlx.Open("postgres", databaseURI)
	if err != nil {
		mainLog.Fatalln(err)
	}
	defer rdb.Close()

	err = rdb.Ping()
	if err != nil {
		mainLog.Fatalln(err)
	}
	rdb.SetMaxOpenConns(MaxDBconnectionPoolSize)

	rootSqalxNode, err = sqalx.New(rdb)
	if err != nil {
		mainLog.Fatalln(err)
	}
	mainLog.Println("Database opened")

	engine = compliance.NewEngine()
	violationW = workflow.NewWorkflow()
	statusCache = cache.New(cache.NoExpiration, 10*time.Minute)

	err = dataobjects.LoadRegistry(rootSqalxNode, engine.Registry)
	if err != nil {
		mainLog.Fatalln(err)
	}
	mainLog.Println("Rule registry loaded")

	go StatsSender()

	if DEBUG {
		printPendingViolations(rootSqalxNode)
	}

	ticker := time.NewTicker(EvaluationInterval)
	defer ticker.Stop()
	for {
		err := EvaluateAllDrivers(rootSqalxNode)
		if err != nil {
			mainLog.Println(err)
		}
		<-ticker.C
	}
}

func printPendingViolations(node sqalx.Node) {
	violations, err := dataobjects.GetPendingViolations(node)
	if err != nil {
		mainLog.Println(err)
		return
	}
	for _, v := range violations {
		mainLog.Println("Pending violation", v.ID, "driver", v.Driver.ID, "type", v.Type,
			"actions", violationW.AllowedActions(v.Status))
	}
}
