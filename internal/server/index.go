package server

import "net/http"

const indexPage = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>gooeyswipe preview</title>
<style>
  body { font: 14px -apple-system, Helvetica, sans-serif; background: #f4f4f4; margin: 2rem; }
  .row { background: #fff; display: inline-block; border-radius: 8px; }
  label { display: inline-block; margin: 0.5rem 1rem 0.5rem 0; }
  input[type=range] { width: 320px; vertical-align: middle; }
  pre { background: #fff; padding: 1rem; max-width: 720px; overflow: auto; }
</style>
</head>
<body>
<h1>gooeyswipe</h1>
<div class="row"><img id="frame" width="375" height="88" alt="frame"></div>
<div>
  <label>progress <input id="p" type="range" min="0" max="1" step="0.01" value="0.5"> <span id="pv">0.50</span></label>
  <label>vertical <input id="vpos" type="range" min="0" max="1" step="0.05" value="0.5"></label>
  <label><select id="dir"><option>right</option><option>left</option></select></label>
  <label><input id="gif" type="checkbox"> animate gesture</label>
</div>
<p><img id="diagram" src="/diagram/" alt="state machine"></p>
<pre id="desc"></pre>
<script>
const $ = (id) => document.getElementById(id);
function update() {
  const q = new URLSearchParams({ p: $("p").value, vpos: $("vpos").value, dir: $("dir").value });
  $("pv").textContent = Number($("p").value).toFixed(2);
  $("frame").src = ($("gif").checked ? "/simulate.gif?" : "/frame.svg?") + q;
  fetch("/descriptors?" + q).then((r) => r.json()).then((d) => {
    $("desc").textContent = JSON.stringify(d, null, 2);
  });
}
for (const id of ["p", "vpos", "dir", "gif"]) $(id).addEventListener("input", update);
update();
</script>
</body>
</html>
`

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(indexPage))
}
