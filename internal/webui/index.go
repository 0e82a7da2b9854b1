package webui

import "net/http"

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexHTML))
}

// indexHTML is the split-screen chat page: messages on the left, the most
// recent dashboard embedded on the right.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<title>Insights Deck</title>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<style>
body { font-family: Arial, sans-serif; margin: 0; display: flex; height: 100vh; }
#chat { width: 40%; display: flex; flex-direction: column; border-right: 1px solid #ddd; }
#messages { flex: 1; overflow-y: auto; padding: 1rem; }
.msg { padding: .75rem 1rem; border-radius: .5rem; margin-bottom: .75rem; white-space: pre-wrap; }
.msg.user { background: #e6f3ff; }
.msg.assistant { background: #f0f0f0; }
#composer { display: flex; padding: 1rem; gap: .5rem; border-top: 1px solid #ddd; }
#composer input { flex: 1; padding: .5rem; }
#viewer { flex: 1; }
#viewer iframe { width: 100%; height: 100%; border: none; }
#placeholder { padding: 2rem; color: #888; }
</style>
</head>
<body>
<div id="chat">
  <div id="messages"></div>
  <form id="composer">
    <input id="input" placeholder="What would you like to analyze?" autocomplete="off">
    <button type="submit">Send</button>
  </form>
</div>
<div id="viewer"><div id="placeholder">No dashboard generated yet. Use the chat to create one!</div></div>
<script>
let sessionId = "";
const messages = document.getElementById("messages");
const viewer = document.getElementById("viewer");

function addMessage(role, text) {
  const div = document.createElement("div");
  div.className = "msg " + role;
  div.textContent = text;
  messages.appendChild(div);
  messages.scrollTop = messages.scrollHeight;
}

document.getElementById("composer").addEventListener("submit", async (e) => {
  e.preventDefault();
  const input = document.getElementById("input");
  const text = input.value.trim();
  if (!text) return;
  input.value = "";
  addMessage("user", text);
  addMessage("assistant", "Working on it...");
  const pending = messages.lastChild;
  try {
    const res = await fetch("/api/chat", {
      method: "POST",
      headers: {"Content-Type": "application/json"},
      body: JSON.stringify({session_id: sessionId, message: text}),
    });
    const data = await res.json();
    sessionId = data.session_id;
    pending.textContent = data.answer;
    if (data.dashboard_url) {
      viewer.innerHTML = '<iframe src="' + data.dashboard_url + '"></iframe>';
    }
  } catch (err) {
    pending.textContent = "Error: " + err;
  }
});
</script>
</body>
</html>
`
