package panel

// pageHTML is the single-page panel UI. It renders the state snapshot pushed
// over the websocket and sends tagged requests back.
const pageHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>repolens</title>
<style>
body { font-family: ui-monospace, monospace; background: #1e1e1e; color: #ddd; margin: 0; display: flex; height: 100vh; }
#sidebar { width: 340px; padding: 12px; overflow-y: auto; border-right: 1px solid #333; }
#main { flex: 1; padding: 12px; overflow: auto; }
h2 { font-size: 13px; text-transform: uppercase; color: #888; margin: 14px 0 6px; }
#branch { font-weight: bold; color: #4ccbf1; }
#tracking { color: #9f83e4; }
ul { list-style: none; padding-left: 8px; margin: 0; }
li { padding: 2px 0; cursor: pointer; }
li:hover { color: #fff; }
li input { margin-right: 6px; }
.staged { color: #4dca7d; }
.modified { color: #f5c800; }
.untracked { color: #f89048; }
.deleted { color: #f46251; }
.hash { color: #eb82bc; }
.dim { color: #777; }
#composer textarea, #composer input { width: 100%; box-sizing: border-box; background: #2a2a2a; color: #ddd; border: 1px solid #444; padding: 6px; margin-bottom: 6px; font-family: inherit; }
#composer button { background: #2d6cdf; color: #fff; border: none; padding: 6px 14px; cursor: pointer; }
#error { color: #f46251; white-space: pre-wrap; }
</style>
</head>
<body>
<div id="sidebar">
  <div><span id="branch"></span> <span id="tracking"></span></div>
  <h2>Staged</h2><ul id="staged"></ul>
  <h2>Changes</h2><ul id="changes"></ul>
  <h2>Unpushed</h2><ul id="unpushed"></ul>
  <h2>Commit</h2>
  <div id="composer">
    <textarea id="message" rows="3" placeholder="Commit message"></textarea>
    <input id="date" placeholder="Timestamp override (optional)">
    <label><input type="checkbox" id="push"> push after commit</label><br><br>
    <button onclick="doCommit()">Commit</button>
  </div>
  <div id="error"></div>
</div>
<div id="main"><div id="diff" class="dim">Select a file to see its diff.</div></div>
<script>
const ws = new WebSocket("ws://" + location.host + "/ws");
let state = null;

ws.onmessage = (msg) => {
  const event = JSON.parse(msg.data);
  if (event.type === "state") { state = event.data; renderState(); }
  if (event.type === "diff") { document.getElementById("diff").innerHTML = event.data.html; }
  if (event.type === "error") { document.getElementById("error").textContent = event.data.message; }
  if (event.type === "done") { document.getElementById("error").textContent = ""; }
  if (event.type === "refresh") { /* a fresh state event follows */ }
};

function send(type, payload) { ws.send(JSON.stringify({ type, payload })); }

function fileItem(path, cls, staged) {
  const li = document.createElement("li");
  const box = document.createElement("input");
  box.type = "checkbox";
  box.dataset.path = path;
  box.className = "select";
  li.appendChild(box);
  const span = document.createElement("span");
  span.textContent = path;
  span.className = cls;
  span.onclick = () => send("diff", { path: path, staged: staged });
  li.appendChild(span);
  return li;
}

function renderState() {
  document.getElementById("branch").textContent = state.branch;
  document.getElementById("tracking").textContent = state.tracking ? "→ " + state.tracking : "";

  const staged = document.getElementById("staged");
  staged.replaceChildren();
  state.staged.forEach(p => staged.appendChild(fileItem(p, "staged", true)));
  state.renamed.forEach(r => staged.appendChild(fileItem(r.from + " → " + r.to, "staged", true)));

  const changes = document.getElementById("changes");
  changes.replaceChildren();
  state.modified.forEach(p => changes.appendChild(fileItem(p, "modified", false)));
  state.deleted.forEach(p => changes.appendChild(fileItem(p, "deleted", false)));
  state.untracked.forEach(p => changes.appendChild(fileItem(p, "untracked", false)));

  const unpushed = document.getElementById("unpushed");
  unpushed.replaceChildren();
  state.unpushed.forEach(c => {
    const li = document.createElement("li");
    li.innerHTML = '<span class="hash">' + c.short_hash + '</span> ' + c.subject;
    unpushed.appendChild(li);
  });
}

function doCommit() {
  const files = Array.from(document.querySelectorAll("input.select:checked")).map(b => b.dataset.path);
  send("commit", {
    message: document.getElementById("message").value,
    date: document.getElementById("date").value,
    files: files,
    push: document.getElementById("push").checked,
  });
}
</script>
</body>
</html>
`
