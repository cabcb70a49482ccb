// Distill turns a free-form brain dump into an organized, actionable plan.
//
// It serves the /api/distill endpoint, which asks a chat completion model
// to group the text into titled sections of short action items, and ships
// a client for that endpoint plus a locally persisted running list.
//
// Usage:
//
//	# Start the server (reads OPENAI_API_KEY from the environment or .env)
//	distill run
//
//	# Start with a custom configuration file
//	distill run --config /etc/distill/config.yaml
//
//	# Distill text through a running server, as Markdown
//	echo "finish report, gym monday, call mom" | distill plan --format markdown
//
//	# Work without a server
//	distill plan --offline "study for the exam and go to the gym"
//
//	# Keep a running list across plans
//	distill list add "Call mom"
//	distill list show
package main

func main() {
	Execute()
}
